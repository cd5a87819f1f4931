package app

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/vk/codecreg/internal/codecctx"
	"github.com/vk/codecreg/internal/ctxlog"
	"github.com/vk/codecreg/internal/registry"
)

// Run acquires the codec context and renders the discovered registry.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	var flags codecctx.Flags
	if a.config.Preload {
		flags |= codecctx.FlagPreloadCodecs
	}

	codecCtx, err := a.controller.Current(ctx, flags)
	if err != nil {
		return err
	}
	defer a.controller.Destroy(ctx)

	if a.config.Output == "json" {
		return a.renderJSON(codecCtx.Registry())
	}
	return a.renderText(codecCtx.Registry())
}

func (a *App) renderText(reg *registry.Registry) error {
	w := tabwriter.NewWriter(a.outW, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tVERSION\tDESCRIPTION\tMODULE\tLOADED")
	for _, entry := range reg.Entries() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\n",
			entry.Info.Name,
			entry.Info.Version,
			entry.Info.Description,
			entry.Info.ModulePath,
			entry.Loaded(),
		)
	}
	return w.Flush()
}

// codecView is the JSON rendering of one registry entry.
type codecView struct {
	Name        string            `json:"name"`
	Version     string            `json:"version"`
	Description string            `json:"description,omitempty"`
	Extensions  []string          `json:"extensions,omitempty"`
	MimeTypes   []string          `json:"mime_types,omitempty"`
	Magic       []string          `json:"magic,omitempty"`
	Properties  map[string]string `json:"properties,omitempty"`
	ModulePath  string            `json:"module_path"`
	Loaded      bool              `json:"loaded"`
}

func (a *App) renderJSON(reg *registry.Registry) error {
	views := make([]codecView, 0, reg.Len())
	for _, entry := range reg.Entries() {
		views = append(views, codecView{
			Name:        entry.Info.Name,
			Version:     entry.Info.Version,
			Description: entry.Info.Description,
			Extensions:  entry.Info.Extensions,
			MimeTypes:   entry.Info.MimeTypes,
			Magic:       entry.Info.Magic,
			Properties:  entry.Info.Properties,
			ModulePath:  entry.Info.ModulePath,
			Loaded:      entry.Loaded(),
		})
	}

	enc := json.NewEncoder(a.outW)
	enc.SetIndent("", "  ")
	return enc.Encode(views)
}
