package blueprint

import "fmt"

// discoveryPromptFmt is phase 1: enumerate sections as free text, one per
// line, so the output can be parsed without JSON.
const discoveryPromptFmt = `You are a legal document analyst. Read both documents and identify EVERY logical section or part in reading order. The document type may be a complaint, motion, petition, affidavit, order, or other - identify the sections that THIS type of document actually contains.

Task:
- List each distinct part as a separate section. Do not merge different functions (e.g. caption vs. notice vs. allegations vs. prayer vs. signature) into one.
- Be detailed: aim for around 10-12 sections when the document has that many parts. For a short document there may be fewer; for a long or formal one there may be more (caption, notices, venue, parties, body, causes of action, facts, relief requested, signature, verification, certification, etc.).
- Base section names and purposes on what you see in the documents, not on a fixed template. Different document types have different structures.
- You MUST identify sections from the beginning through the very end of each document. Do not skip the closing pages: include any signature blocks, verification/affirmation, certification, filing instructions, or proof-of-service sections that appear at the end.

Output format (use this format only; do NOT output JSON):
- One section per line.
- Each line: a number, then the section name, then " — " (dash), then a short purpose in a few words.
- Example of the format (your actual section names will depend on the documents):
  1. [Section name from document] — [what that part does]
  2. [Next section] — [purpose]
  ...
- You MUST list at least 6 lines. If the documents have more distinct parts, list all of them (aim for detailed breakdown, around 10-12 sections when appropriate).

Doc1:
%s

Doc2:
%s
`

// structuringPromptFmt is phase 2: convert the discovery list to strict JSON.
const structuringPromptFmt = `Convert the following section list into valid JSON.

Rules:
- Preserve order.
- Do NOT remove sections.
- Each item must have name and purpose.

Return ONLY JSON.

Format:

{
  "sections": [
    {"name": "...", "purpose": "..."}
  ]
}

Section List:
%s
`

func buildDiscoveryPrompt(doc1, doc2 string) string {
	return fmt.Sprintf(discoveryPromptFmt, doc1, doc2)
}

func buildStructuringPrompt(rawList string) string {
	return fmt.Sprintf(structuringPromptFmt, rawList)
}
