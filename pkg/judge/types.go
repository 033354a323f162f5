package judge

import "context"

// Language identifiers of the external execution service (Judge0 CE).
const (
	LanguageC          = 50
	LanguageCPP        = 54
	LanguageJava       = 62
	LanguageJavaScript = 63
	LanguagePython     = 71
)

var languageIDs = map[string]int{
	"c":          LanguageC,
	"cpp":        LanguageCPP,
	"java":       LanguageJava,
	"javascript": LanguageJavaScript,
	"python":     LanguagePython,
}

// LanguageID maps a language name to the service's numeric identifier.
func LanguageID(name string) (int, bool) {
	id, ok := languageIDs[name]
	return id, ok
}

// SupportedLanguages lists the language names the client can submit.
func SupportedLanguages() []string {
	names := make([]string, 0, len(languageIDs))
	for name := range languageIDs {
		names = append(names, name)
	}
	return names
}

// Submission is one unit of work for the execution service. ExpectedOutput is
// empty for free-form runs and set for graded submissions.
type Submission struct {
	SourceCode     string
	LanguageID     int
	Stdin          string
	ExpectedOutput string
}

// Status is the verdict portion of the service response. The client does not
// interpret it; callers decide what each id means.
type Status struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}

// StatusAccepted is the verdict id the service reports when the program ran
// and its output matched the expected output.
const StatusAccepted = 3

// Result is the normalized outcome of a single evaluation. When Error is set
// the call failed at the transport level and every other field except Message
// is zero; callers must treat it as terminal for that call.
type Result struct {
	Error         bool    `json:"error,omitempty"`
	Message       string  `json:"message,omitempty"`
	Token         string  `json:"token,omitempty"`
	Status        *Status `json:"status,omitempty"`
	Stdout        string  `json:"stdout,omitempty"`
	Stderr        string  `json:"stderr,omitempty"`
	CompileOutput string  `json:"compile_output,omitempty"`
	Time          string  `json:"time,omitempty"`
	Memory        float64 `json:"memory,omitempty"`
}

// Accepted reports whether the result carries a passing verdict.
func (r Result) Accepted() bool {
	return !r.Error && r.Status != nil && r.Status.ID == StatusAccepted
}

// Client submits code to the external execution service and reports the
// outcome. Transport failures come back as error-shaped Results, not Go
// errors, so one failed case cannot abort a multi-case grading run.
type Client interface {
	Evaluate(ctx context.Context, submission Submission) Result
}
