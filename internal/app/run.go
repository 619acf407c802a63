package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/adapterhub/internal/buildconfig"
	"github.com/vk/adapterhub/internal/ctxlog"
	"github.com/vk/adapterhub/internal/packagemeta"
)

// Run executes the main application logic based on the provided configuration.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if appConfig.HealthcheckPort > 0 {
		go a.startHealthcheckServer(appConfig.HealthcheckPort)
	}

	if err := a.report(ctx); err != nil {
		return err
	}

	if appConfig.PackagesPath != "" {
		if err := a.reviewPackages(ctx, appConfig.PackagesPath); err != nil {
			return fmt.Errorf("package review failed: %w", err)
		}
	}

	if appConfig.SettingsPath != "" {
		a.logger.Debug("Syncing project settings...", "path", appConfig.SettingsPath)
		if err := buildconfig.Sync(ctx, a.registry, appConfig.SettingsPath); err != nil {
			return fmt.Errorf("settings sync failed: %w", err)
		}
	}

	if appConfig.Call != "" {
		if err := a.callOnce(ctx, appConfig.Call, appConfig.CallArgs); err != nil {
			return err
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// report prints the discovered adapters with their versions and methods.
func (a *App) report(ctx context.Context) error {
	names, err := a.registry.Adapters()
	if err != nil {
		return err
	}

	fmt.Fprintf(a.outW, "Adapters discovered: %d\n", len(names))
	for _, name := range names {
		version, err := a.registry.Version(name)
		if err != nil {
			return err
		}
		methods, err := a.registry.MethodNames(name)
		if err != nil {
			return err
		}
		tag, err := a.registry.ConfigTag(name)
		if err != nil {
			return err
		}
		if tag != "" {
			tag = " [" + tag + "]"
		}
		fmt.Fprintf(a.outW, "  %s v%s%s: %s\n", name, version, tag, strings.Join(methods, ", "))
	}
	return nil
}

// reviewPackages scans the package tree and cross-references every declared
// adapter against the registry.
func (a *App) reviewPackages(ctx context.Context, root string) error {
	idx, err := packagemeta.Scan(ctx, root)
	if err != nil {
		return err
	}

	statuses, err := idx.CrossReference(ctx, a.registry)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.outW, "Packages indexed: %d\n", idx.Len())
	for _, s := range statuses {
		fmt.Fprintf(a.outW, "  %s/%s: %s\n", s.Package, s.Adapter, s.State)
	}
	return nil
}

// callOnce performs the one-shot invocation requested on the command line.
// Arguments arrive as strings; methods invoked this way must accept them.
func (a *App) callOnce(ctx context.Context, target string, callArgs []string) error {
	adapter, method, _ := strings.Cut(target, ".")

	args := make([]any, len(callArgs))
	for i, s := range callArgs {
		args[i] = s
	}

	a.logger.Info("Invoking adapter method.", "adapter", adapter, "method", method, "args", callArgs)
	value, ok := a.registry.Invoke(ctx, adapter, method, args...)
	if !ok {
		return fmt.Errorf("invocation of %s.%s failed", adapter, method)
	}
	if value != nil {
		fmt.Fprintf(a.outW, "%v\n", value)
	}
	return nil
}
