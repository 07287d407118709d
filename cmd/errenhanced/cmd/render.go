package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msto63/errenhanced/pkg/enhanced"
	"github.com/msto63/errenhanced/pkg/enhancer/httpstatus"
	"github.com/msto63/errenhanced/pkg/enhancer/identifiers"
)

var (
	renderFormat      string
	renderCode        int
	renderPrefix      string
	renderDescription string
	renderSeverity    string
	renderCategory    string
	renderStatus      int
	renderURL         string
	renderMethod      string
	renderUser        string
	renderRoles       []string
	renderFilter      bool
	renderHash        bool
)

var renderCmd = &cobra.Command{
	Use:   "render <name> [message]",
	Short: "Compose an error and print it",
	Long: `Composes an error with every built-in capability, applies the given
fields and prints it in the selected format.

Examples:
  errenhanced render DatabaseError "connection refused" --code 5432 --prefix EE \
      --severity high --category network --filter
  errenhanced render PaymentError "card declined" --status 402 --format yaml
  errenhanced render ImportError --format csv`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "json", "output format (json, xml, csv, yaml)")
	renderCmd.Flags().IntVar(&renderCode, "code", 0, "error code")
	renderCmd.Flags().StringVar(&renderPrefix, "prefix", "", "error code prefix")
	renderCmd.Flags().StringVar(&renderDescription, "description", "", "error description")
	renderCmd.Flags().StringVar(&renderSeverity, "severity", "", "severity (low, medium, high, critical)")
	renderCmd.Flags().StringVar(&renderCategory, "category", "", "category, e.g. network or validation")
	renderCmd.Flags().IntVar(&renderStatus, "status", 0, "HTTP status code")
	renderCmd.Flags().StringVar(&renderURL, "url", "", "request URL")
	renderCmd.Flags().StringVar(&renderMethod, "method", "", "HTTP method")
	renderCmd.Flags().StringVar(&renderUser, "user", "", "user name")
	renderCmd.Flags().StringSliceVar(&renderRoles, "roles", nil, "user roles")
	renderCmd.Flags().BoolVar(&renderFilter, "filter", false, "omit unset fields")
	renderCmd.Flags().BoolVar(&renderHash, "hash", false, "print the content hash instead of the error")
}

func runRender(cmd *cobra.Command, args []string) error {
	f, err := newFactory()
	if err != nil {
		printError("setup failed", err)
		return err
	}

	message := ""
	if len(args) > 1 {
		message = args[1]
	}
	e := f.New(args[0], message)

	if err := applyRenderFlags(cmd, e); err != nil {
		printError("invalid field", err)
		return err
	}
	if renderFilter {
		e = e.FilterUnused()
	}

	if renderHash {
		fmt.Fprintln(cmd.OutOrStdout(), e.Hash())
		return nil
	}

	out, err := e.Serialize(renderFormat)
	if err != nil {
		printError("render failed", err)
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	if !strings.HasSuffix(out, "\n") {
		fmt.Fprintln(cmd.OutOrStdout())
	}
	return nil
}

// applyRenderFlags sets every flag the user passed explicitly
func applyRenderFlags(cmd *cobra.Command, e *enhanced.Error) error {
	changed := cmd.Flags().Changed
	var err error

	set := func(name string, apply func() error) {
		if err == nil && changed(name) {
			err = apply()
		}
	}

	set("code", func() error { _, err := e.SetErrorCode(renderCode); return err })
	set("prefix", func() error { _, err := e.SetErrorCodePrefix(renderPrefix); return err })
	set("description", func() error { _, err := e.SetErrorDescription(renderDescription); return err })
	set("severity", func() error {
		_, err := e.SetSeverity(identifiers.Severity(strings.ToLower(renderSeverity)))
		return err
	})
	set("category", func() error {
		_, err := e.SetCategory(identifiers.Category(strings.ToLower(renderCategory)))
		return err
	})
	set("status", func() error { _, err := e.SetStatusCode(renderStatus); return err })
	set("url", func() error { _, err := e.SetURL(renderURL); return err })
	set("method", func() error {
		_, err := e.SetMethod(httpstatus.Method(strings.ToUpper(renderMethod)))
		return err
	})
	set("user", func() error { _, err := e.SetUser(renderUser); return err })
	set("roles", func() error { _, err := e.SetRoles(renderRoles); return err })

	return err
}
