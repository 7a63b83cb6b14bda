package cmd

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/lifedash/internal/model"
	"github.com/manav03panchal/lifedash/internal/runtime"
)

// completionTimeout keeps shell completion snappy when the backend is slow.
const completionTimeout = 2 * time.Second

// completeHabitIDs completes a habit ID argument from the backend's habit list.
func completeHabitIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	// setupRuntime does not run for __complete, so build one here.
	rc, ok := runtime.From(cmd.Context())
	if !ok {
		var err error
		rc, err = newRuntime(cmd)
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		defer rc.Close()
	}

	ctx, cancel := context.WithTimeout(commandContext(cmd), completionTimeout)
	defer cancel()

	res := rc.Client.Habits(ctx)
	if !res.OK() {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var completions []string
	for _, h := range res.Value {
		id := strconv.FormatInt(h.ID, 10)
		if strings.HasPrefix(id, toComplete) {
			completions = append(completions, id+"\t"+h.Name)
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

// completeCategories completes the --category flag.
func completeCategories(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var completions []string
	for _, c := range model.Categories() {
		name := strings.ToLower(c.String())
		if strings.HasPrefix(name, strings.ToLower(toComplete)) {
			completions = append(completions, name+"\t"+c.Label())
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}
