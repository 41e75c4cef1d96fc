package llm

import _ "embed"

var (
	//go:embed prompts/basic.txt
	promptBasic string
	//go:embed prompts/pro.txt
	promptPro string
)

// PromptTemplate returns the prompt template for a tier and whether the tier
// was recognized. Unknown tiers fall back to the basic template.
func PromptTemplate(tier string) (string, bool) {
	switch tier {
	case "pro":
		return promptPro, true
	case "basic":
		return promptBasic, true
	default:
		return promptBasic, false
	}
}
