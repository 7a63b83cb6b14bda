package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Suggestions maps common errors to helpful suggestions.
var Suggestions = map[error]string{
	ErrBackendUnavailable: "Make sure the Life Analytics backend is running, or point --api-url at it.",
	ErrRequestFailed:      "The backend rejected the request. Run with --debug to see the response status.",
	ErrHabitNotFound:      "Use 'lifedash habit list' to see habit IDs.",
	ErrInvalidCategory:    "Use one of HEALTH, PRODUCTIVITY, MINDFULNESS, LEARNING, OTHER.",
	ErrInvalidScore:       "Scores range from 1 (lowest) to 10 (highest).",
	ErrInvalidSleep:       "Sleep is given in hours between 0 and 24, e.g. 7.5.",
	ErrInvalidTarget:      "The weekly target is a number of days from 1 to 7.",
	ErrInvalidDate:        "Try formats like '2025-12-04', 'today', 'yesterday', or '3 days ago'.",
	ErrInvalidID:          "Habit IDs are positive numbers. Use 'lifedash habit list' to find them.",
	ErrInvalidURL:         "Provide a URL like http://localhost:8080/api.",
	ErrInvalidConfig:      "Check 'lifedash config' and your LIFEDASH_* environment variables.",
	ErrTimeout:            "The backend took too long to answer. Raise --timeout or check the backend.",
	ErrNotInteractive:     "Pass the values as flags instead of using -i.",
}

// GetSuggestion returns a suggestion for an error, if available.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	if ue, ok := AsUserError(err); ok && ue.Suggestion != "" {
		return ue.Suggestion
	}

	for knownErr, suggestion := range Suggestions {
		if errors.Is(err, knownErr) {
			return suggestion
		}
	}

	if IsNetworkError(err) {
		return Suggestions[ErrBackendUnavailable]
	}
	return ""
}

// CommandExamples provides example commands for common errors.
var CommandExamples = map[error][]string{
	ErrInvalidCategory: {
		"lifedash habit create \"Morning Run\" --category health --target 5",
		"lifedash habit list --category mindfulness",
	},
	ErrInvalidDate: {
		"lifedash habit log 3 --date yesterday",
		"lifedash health list --from 2025-12-01 --to 2025-12-07",
	},
	ErrInvalidScore: {
		"lifedash health log --sleep 7.5 --mood 7 --stress 3 --energy 6",
	},
}

// GetExamples returns example commands for an error.
func GetExamples(err error) []string {
	for knownErr, examples := range CommandExamples {
		if errors.Is(err, knownErr) {
			return examples
		}
	}
	return nil
}

// FormatUserError formats an error for display: the message, a suggestion,
// and example commands when known.
func FormatUserError(err error) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(err.Error())

	if suggestion := GetSuggestion(err); suggestion != "" {
		sb.WriteString("\n\n")
		sb.WriteString(suggestion)
	}

	if examples := GetExamples(err); len(examples) > 0 {
		sb.WriteString("\n\nExamples:\n")
		for _, ex := range examples {
			sb.WriteString("  ")
			sb.WriteString(ex)
			sb.WriteString("\n")
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

// FormatDebugError formats an error with its chain, category and root cause.
func FormatDebugError(err error) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Error: ")
	sb.WriteString(err.Error())
	sb.WriteString("\n")

	if chain := Chain(err); len(chain) > 1 {
		sb.WriteString("\nError chain:\n")
		for i, msg := range chain {
			sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, msg))
		}
	}

	sb.WriteString(fmt.Sprintf("\nCategory: %s\n", Classify(err)))

	if suggestion := GetSuggestion(err); suggestion != "" {
		sb.WriteString(fmt.Sprintf("\nSuggestion: %s\n", suggestion))
	}

	if root := RootCause(err); root != err {
		sb.WriteString(fmt.Sprintf("\nRoot cause: %v\n", root))
	}

	return sb.String()
}
