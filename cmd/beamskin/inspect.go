// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/internal/issue"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/configdoc"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/skintemplate"
)

// newInspectCommand creates the `beamskin inspect` command.
func newInspectCommand(a *App) *cobra.Command {
	var (
		query    string
		path     string
		entries  bool
		skinOnly bool
	)
	inspectCmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Parse a materials or jbeam file and print it as JSON",
		Long: `Parse a materials or jbeam file and print it as strict JSON.

Files ending in .jbeam are read in the relaxed jbeam dialect (comments,
trailing commas, missing commas). Member order and number spelling are kept.`,
		Example: `  beamskin inspect etk800.jbeam
  beamskin inspect skin.materials.json --query '$..baseColorMap'
  beamskin inspect skin.materials.json --path 'etk800_skin.Stages[0]'
  beamskin inspect etk800.jbeam --skin`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				doc *configdoc.Document
				err error
			)
			// The session is optional here; without a config the file is
			// still parsed, just not cached.
			if s, sessErr := a.Session(cmd.Context()); sessErr == nil {
				doc, err = s.Cache.ParseFile(args[0])
			} else {
				doc, err = configdoc.ParseFile(args[0])
			}
			if err != nil {
				return wrapInspectError(args[0], err)
			}

			var out any = doc.Root
			switch {
			case skinOnly:
				return a.inspectSkin(doc)
			case entries:
				for key, v := range doc.Entries() {
					b, err := configdoc.Marshal(v)
					if err != nil {
						return err
					}
					a.printf("%s = %s\n", key, b)
				}
				return nil
			case query != "":
				if out, err = doc.Query(query); err != nil {
					return err
				}
			case path != "":
				if out, err = doc.Lookup(path); err != nil {
					return err
				}
			}
			b, err := configdoc.MarshalIndent(out)
			if err != nil {
				return err
			}
			a.printf("%s", b)
			return nil
		},
	}
	inspectCmd.Flags().StringVarP(&query, "query", "q", "", "JSONPath expression to evaluate")
	inspectCmd.Flags().StringVar(&path, "path", "", "structural path to print, as listed by --entries")
	inspectCmd.Flags().BoolVar(&entries, "entries", false, "list every value with its structural path")
	inspectCmd.Flags().BoolVar(&skinOnly, "skin", false, "list the skin-capable entries in declaration order")
	inspectCmd.MarkFlagsMutuallyExclusive("query", "path", "entries", "skin")
	return inspectCmd
}

// inspectSkin lists the skin-capable entries of doc. The first one is what
// registering the vehicle would use.
func (a *App) inspectSkin(doc *configdoc.Document) error {
	match := skintemplate.IsSkinPart
	if doc.Format == configdoc.FormatJSON {
		match = skintemplate.IsSkinMaterial
	}
	n := 0
	for _, m := range doc.Root.Members() {
		obj, ok := m.Value.(*configdoc.Object)
		if !ok || !match(obj) {
			continue
		}
		marker := SubtitleStyle.Render("(skipped)")
		if n == 0 {
			marker = SuccessStyle.Render("(selected)")
		}
		a.printf("%s %s\n", KeyStyle.Render(m.Key), marker)
		n++
	}
	if n == 0 {
		return &skintemplate.NoCanonicalSkinError{Document: documentKind(doc), Path: doc.Path}
	}
	return nil
}

func documentKind(doc *configdoc.Document) skintemplate.DocumentKind {
	if doc.Format == configdoc.FormatJSON {
		return skintemplate.DocumentMaterial
	}
	return skintemplate.DocumentPart
}

func wrapInspectError(file string, err error) error {
	ctx := issue.NewErrorContext().
		WithOperation("inspect file").
		WithResource(file)
	if errors.Is(err, configdoc.ErrMalformedConfig) {
		ctx = ctx.WithSuggestion("The position above points at the first character the parser rejected")
	} else {
		ctx = ctx.WithSuggestion(fmt.Sprintf("Check that %s exists and is readable", file))
	}
	return ctx.Wrap(err).BuildError()
}
