package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/manav03panchal/lifedash/internal/api"
	"github.com/manav03panchal/lifedash/internal/errors"
	"github.com/manav03panchal/lifedash/internal/model"
	"github.com/manav03panchal/lifedash/internal/parser"
	"github.com/manav03panchal/lifedash/internal/runtime"
)

// parseID parses a habit ID argument.
func parseID(arg string) (int64, error) {
	id, err := parser.ParseID(arg)
	if err != nil {
		var pe *parser.ParseError
		if errors.As(err, &pe) {
			return 0, pe.ToUserError()
		}
		return 0, err
	}
	return id, nil
}

// parseDateFlag parses a --date value; empty means today.
func parseDateFlag(field, value string) (model.Date, error) {
	r := parser.ParseDate(value)
	if r.Error != nil {
		var pe *parser.ParseError
		if errors.As(r.Error, &pe) {
			pe.Field = field
			return model.Date{}, pe.ToUserError()
		}
		return model.Date{}, r.Error
	}
	return r.Date, nil
}

// parseRangeFlags parses --from and --to values.
func parseRangeFlags(from, to string) (model.Date, model.Date, error) {
	start, end, err := parser.ParseRange(from, to, time.Now())
	if err != nil {
		var pe *parser.ParseError
		if errors.As(err, &pe) {
			return model.Date{}, model.Date{}, pe.ToUserError()
		}
		return model.Date{}, model.Date{}, err
	}
	return start, end, nil
}

// isInteractive reports whether stdin and stdout are both terminals.
func isInteractive() bool {
	in := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	out := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	return in && out
}

func requireInteractive() error {
	if !isInteractive() {
		return errors.NewUserError("Interactive mode needs a terminal", "").Because(errors.ErrNotInteractive)
	}
	return nil
}

// failureError turns a failed call into an error for exit-code purposes.
// A 404 on a habit-scoped call means the habit does not exist.
func failureError(action string, habitID int64, f api.Failure) error {
	switch {
	case habitID > 0 && f.Kind == api.FailureHTTP && f.StatusCode == http.StatusNotFound:
		return errors.NewUserErrorWithField("habit", fmt.Sprintf("#%d", habitID), "Habit not found", "").
			Because(errors.ErrHabitNotFound)
	case f.Err != nil:
		return errors.Wrap(f.Err, action)
	case f.Kind == api.FailureTransport:
		return errors.Wrap(errors.ErrBackendUnavailable, action)
	default:
		return errors.Wrap(errors.ErrRequestFailed, action)
	}
}

// reportCommand prints the outcome of a create, log or delete that the
// backend did not accept, and returns an already-reported error.
func reportCommand(rc *runtime.Context, action string, habitID int64, f api.Failure, body json.RawMessage) error {
	err := failureError(action, habitID, f)
	rc.Debugf("%s failed: %s", action, f.Error())

	if rc.IsJSON() {
		if jerr := rc.JSONFormatter().PrintCommand(false, f, body); jerr != nil {
			return jerr
		}
		return reported(err)
	}

	rc.CLIFormatter().PrintFailure(action, f.Unreachable())
	if errors.Is(err, errors.ErrHabitNotFound) {
		rc.CLIFormatter().Muted(errors.GetSuggestion(err))
	}
	return reported(err)
}
