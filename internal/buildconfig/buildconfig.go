// Package buildconfig keeps a project settings file in step with the adapter
// registry. It owns exactly one attribute, adapter_symbols inside the project
// block: after a sync the attribute holds the config tag of every registered
// adapter that declares one, and nothing else. All other content of the file
// belongs to other tooling and is rewritten byte-for-byte.
package buildconfig

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/adapterhub/internal/ctxlog"
	"github.com/vk/adapterhub/internal/registry"
	"github.com/vk/adapterhub/internal/schema"
)

// Symbols reads the managed adapter_symbols attribute from the settings file
// at path. A missing file or a missing project block yields an empty list.
func Symbols(path string) ([]string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	hclFile, diags := hclparse.NewParser().ParseHCL(src, path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", path, diags)
	}

	var settings schema.Settings
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &settings); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode settings file %s: %w", path, diags)
	}
	if settings.Project == nil {
		return nil, nil
	}
	return settings.Project.AdapterSymbols, nil
}

// Sync rewrites adapter_symbols to exactly the set of config tags the
// registry carries: a tag appears iff its adapter is registered. The write is
// skipped when the file already agrees.
func Sync(ctx context.Context, reg *registry.Registry, path string) error {
	logger := ctxlog.FromContext(ctx)

	desired, err := collectTags(reg)
	if err != nil {
		return err
	}

	current, err := Symbols(path)
	if err != nil {
		return err
	}
	if slices.Equal(current, desired) {
		logger.Debug("Adapter symbols already in sync.", "path", path, "symbols", desired)
		return nil
	}

	f, err := parseForEdit(path)
	if err != nil {
		return err
	}

	body := f.Body()
	block := body.FirstMatchingBlock("project", nil)
	if block == nil {
		block = body.AppendNewBlock("project", nil)
	}
	block.Body().SetAttributeValue("adapter_symbols", symbolsValue(desired))

	if err := os.WriteFile(path, f.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write settings file %s: %w", path, err)
	}

	logger.Info("Adapter symbols synced.", "path", path, "added_or_kept", desired, "previous", current)
	return nil
}

// collectTags gathers the non-empty config tags of every registered adapter,
// sorted for a deterministic file.
func collectTags(reg *registry.Registry) ([]string, error) {
	names, err := reg.Adapters()
	if err != nil {
		return nil, err
	}
	var tags []string
	for _, name := range names {
		tag, err := reg.ConfigTag(name)
		if err != nil {
			return nil, err
		}
		if tag != "" && !slices.Contains(tags, tag) {
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags)
	return tags, nil
}

func parseForEdit(path string) (*hclwrite.File, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return hclwrite.NewEmptyFile(), nil
		}
		return nil, err
	}
	f, diags := hclwrite.ParseConfig(src, path, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", path, diags)
	}
	return f, nil
}

func symbolsValue(symbols []string) cty.Value {
	if len(symbols) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	vals := make([]cty.Value, len(symbols))
	for i, s := range symbols {
		vals[i] = cty.StringVal(s)
	}
	return cty.ListVal(vals)
}
