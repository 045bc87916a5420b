// internal/workers/translation/translate-text/models.go
package translatetext

type Outcome string

const (
	OutcomeTranslated Outcome = "translated"
	OutcomeDisabled   Outcome = "disabled"
	OutcomeFailed     Outcome = "failed"
	OutcomeEmpty      Outcome = "empty"
)

type Input struct {
	Text string `json:"text"`
}

type Output struct {
	Text    string  `json:"text"`
	Outcome Outcome `json:"outcome"`
}

type requestItem struct {
	Text string `json:"text"`
}

// responseItem is one element of the translator's response array. Text is a
// pointer so an absent key can be told apart from an empty translation.
type responseItem struct {
	Translations []struct {
		Text *string `json:"text"`
		To   string  `json:"to"`
	} `json:"translations"`
}
