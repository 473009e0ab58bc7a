package main

import (
	"fmt"
	"io"
	"log"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/born-ml/syft/internal/config"
	"github.com/born-ml/syft/internal/hook"
	"github.com/born-ml/syft/internal/library"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print what the hook intercepts",
	Long: "`report` installs the hook on a fresh library and lists the " +
		"intercepted methods of each class and the policy of every " +
		"overloaded module function.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		logger := log.New(cmd.ErrOrStderr(), "syft: ", log.LstdFlags)

		h, err := hook.Install(library.New(), hook.WithConfig(cfg), hook.WithLogger(logger))
		if err != nil {
			return err
		}
		return writeReport(cmd.OutOrStdout(), h)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

// writeReport renders the report in memory and writes it to w in one call.
func writeReport(w io.Writer, h *hook.Hook) error {
	var b strings.Builder
	lib := h.Library()
	fmt.Fprintf(&b, "Library %s %s, local worker %q\n\n", lib.Name(), lib.Version(), h.LocalWorker().ID())

	for _, class := range []string{library.TensorClass, library.VariableClass} {
		methods := h.AutoOverload(class)
		fmt.Fprintf(&b, "%s: %d intercepted methods\n", class, len(methods))
		fmt.Fprintf(&b, "  %s\n", strings.Join(methods, " "))
	}

	overloaded := h.Overloaded()
	fmt.Fprintf(&b, "\nModule functions: %d overloaded\n", len(overloaded))
	for _, name := range overloaded {
		moduleName, funcName, _ := strings.Cut(name, ".")
		path := ""
		if m, ok := lib.Module(moduleName); ok {
			if a, ok := m.Attr(funcName); ok {
				path = a.ModulePath
			}
		}
		fmt.Fprintf(&b, "  %-20s %-12s %s\n", name, h.Policy(name), path)
	}

	if excluded := h.Attributes().Exclude; len(excluded) > 0 {
		names := make([]string, 0, len(excluded))
		for name := range excluded {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Fprintf(&b, "\nExcluded: %s\n", strings.Join(names, " "))
	}

	_, err := io.WriteString(w, b.String())
	return err
}
