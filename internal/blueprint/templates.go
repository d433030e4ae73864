package blueprint

import "strings"

// Document types recognized by the keyword heuristic.
const (
	DocTypeComplaint = "complaint"
	DocTypeMotion    = "motion"
	DocTypePetition  = "petition"
	DocTypeAffidavit = "affidavit"
	DocTypeUnknown   = "unknown"
)

// defaultComplaintSections is the terminal fallback for complaint-like
// documents (and the default when the type is unrecognized).
var defaultComplaintSections = []Pair{
	{"Case Caption", "Court name, county, case index number, and parties."},
	{"Summons Notice", "Notice to defendant of obligation to respond and deadline."},
	{"Venue and Jurisdiction", "Statement of venue and jurisdictional basis."},
	{"Attorney and Party Details", "Plaintiff's attorney and party contact information."},
	{"Defendant Service Information", "Where and how defendants are to be served."},
	{"Complaint Introduction", "Introductory paragraph(s) and nature of the action."},
	{"Jurisdictional Facts", "Facts supporting jurisdiction and venue."},
	{"Cause of Action", "Statement of causes of action and legal claims."},
	{"Factual Allegations", "Numbered factual allegations describing events."},
	{"Damages and Relief Claim", "Prayer for damages and requested relief."},
	{"Signature Block", "Plaintiff or attorney signature block."},
	{"Attorney Verification or Affirmation", "Verification or affirmation by attorney."},
	{"Filing and Certification Page", "Filing instructions, certification, and proof of service."},
}

// defaultMotionSections is the terminal fallback for motions.
var defaultMotionSections = []Pair{
	{"Case Caption", "Court, case number, and parties."},
	{"Notice of Motion", "Notice of motion hearing and relief sought."},
	{"Affidavit in Support", "Sworn factual affidavit supporting motion."},
	{"Memorandum of Law", "Legal argument and citations."},
	{"Conclusion and Prayer", "Requested ruling and relief."},
	{"Signature Block", "Attorney signature and contact info."},
}

// GuessDocType guesses the document type from keyword heuristics.
func GuessDocType(text string) string {
	t := strings.ToLower(text)
	switch {
	case strings.Contains(t, "summons") && strings.Contains(t, "complaint"):
		return DocTypeComplaint
	case strings.Contains(t, "notice of motion") || strings.Contains(t, "motion"):
		return DocTypeMotion
	case strings.Contains(t, "petition"):
		return DocTypePetition
	case strings.Contains(t, "affidavit"):
		return DocTypeAffidavit
	default:
		return DocTypeUnknown
	}
}

// FallbackSections returns the fixed default section list for a guessed
// document type.
func FallbackSections(docType string) []Section {
	base := defaultComplaintSections
	if docType == DocTypeMotion {
		base = defaultMotionSections
	}
	sections := make([]Section, len(base))
	for i, p := range base {
		sections[i] = Section{ID: i + 1, Name: p.Name, Purpose: p.Purpose}
	}
	return sections
}
