package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/noya-app/noyastate"
	"github.com/noya-app/noyastate/sketch"
	"github.com/noya-app/noyastate/tree"
)

// cli holds what the persistent flags resolve to.
type cli struct {
	configPath string
	logLevel   string
	output     string
	pageID     string

	cfg Config
	ctx noyastate.RenderContext
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:          "noyastate",
		Short:        "Apply editor actions to Sketch documents",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "YAML config file")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "debug, info, warn or error (overrides the config)")

	// --- apply ---
	applyCmd := &cobra.Command{
		Use:   "apply <document.json> <script.yaml>",
		Short: "Apply an action script and write the resulting document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.applyFiles(args[0], args[1], cmd.OutOrStdout())
		},
	}
	applyCmd.Flags().StringVarP(&c.output, "output", "o", "", "write the document here instead of stdout")

	// --- inspect ---
	inspectCmd := &cobra.Command{
		Use:   "inspect <document.json>",
		Short: "Print the layer tree of every page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := readDocument(args[0])
			if err != nil {
				return err
			}
			return inspect(cmd.OutOrStdout(), f, c.pageID)
		},
	}
	inspectCmd.Flags().StringVar(&c.pageID, "page", "", "only print the page with this ID or name")

	// --- watch ---
	watchCmd := &cobra.Command{
		Use:   "watch <document.json> <script.yaml>",
		Short: "Re-apply a script every time it changes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.output == "" {
				return fmt.Errorf("watch: --output is required")
			}
			return c.watch(cmd.Context(), args[0], args[1])
		},
	}
	watchCmd.Flags().StringVarP(&c.output, "output", "o", "", "document to (re)write")

	// --- actions ---
	actionsCmd := &cobra.Command{
		Use:   "actions",
		Short: "List the action tags a script can use",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, tag := range noyastate.ActionTypes() {
				fmt.Fprintln(cmd.OutOrStdout(), tag)
			}
		},
	}

	root.AddCommand(applyCmd, inspectCmd, watchCmd, actionsCmd)
	return root
}

// setup loads the config and installs the logger.
func (c *cli) setup(stderr io.Writer) error {
	cfg, err := LoadConfig(c.configPath)
	if err != nil {
		return err
	}
	if c.logLevel != "" {
		cfg.LogLevel = c.logLevel
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("--log-level: %w", err)
		}
	}
	c.cfg = cfg
	noyastate.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.Level()})))
	c.ctx, err = cfg.RenderContext()
	return err
}

func readDocument(path string) (*sketch.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := sketch.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

func readScript(path string) ([]noyastate.Action, error) {
	r, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	actions, err := noyastate.DecodeScript(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return actions, nil
}

// applyFiles runs a script over a document and writes the result to
// c.output, or to stdout when no output is set.
func (c *cli) applyFiles(docPath, scriptPath string, stdout io.Writer) error {
	f, err := readDocument(docPath)
	if err != nil {
		return err
	}
	actions, err := readScript(scriptPath)
	if err != nil {
		return err
	}
	out, err := apply(f, actions, c.ctx)
	if err != nil {
		return err
	}
	if c.output == "" {
		return sketch.Encode(stdout, out)
	}
	return writeDocument(c.output, out)
}

// apply reduces actions over f and returns the new document.
func apply(f *sketch.File, actions []noyastate.Action, ctx noyastate.RenderContext) (*sketch.File, error) {
	s, err := noyastate.CreateInitialState(f)
	if err != nil {
		return nil, err
	}
	changed := 0
	for i, a := range actions {
		next := noyastate.ApplicationReducer(s, a, ctx)
		if next == s {
			noyastate.Logger().Info("action had no effect", "index", i, "action", noyastate.ActionType(a))
			continue
		}
		s = next
		changed++
	}
	noyastate.Logger().Debug("script applied", "actions", len(actions), "changed", changed)
	return s.Sketch, nil
}

// writeDocument replaces path atomically.
func writeDocument(path string, f *sketch.File) error {
	var buf bytes.Buffer
	if err := sketch.Encode(&buf, f); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// inspect prints one line per layer, indented by depth.
func inspect(w io.Writer, f *sketch.File, page string) error {
	found := false
	for _, p := range f.Pages {
		if page != "" && p.ObjectID != page && p.Name != page {
			continue
		}
		found = true
		fmt.Fprintf(w, "page %q (%s)\n", p.Name, p.ObjectID)
		sketch.Visit(p, tree.Visitor[*sketch.Layer]{
			Enter: func(l *sketch.Layer, path tree.IndexPath, _ []*sketch.Layer) tree.Signal {
				r := l.Frame.Rect()
				var flags []string
				if !l.IsVisible {
					flags = append(flags, "hidden")
				}
				if l.IsLocked {
					flags = append(flags, "locked")
				}
				line := fmt.Sprintf("%s%s %q (%s) %g,%g %gx%g", strings.Repeat("  ", len(path)-1), l.Class, l.Name, l.ObjectID, r.X, r.Y, r.Width, r.Height)
				if len(flags) > 0 {
					line += " [" + strings.Join(flags, ",") + "]"
				}
				fmt.Fprintln(w, line)
				return tree.Continue
			},
		}, tree.ExcludeRoot())
	}
	if !found {
		return fmt.Errorf("inspect: no page %q", page)
	}
	return nil
}
