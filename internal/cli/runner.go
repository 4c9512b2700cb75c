package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"dynadoc/internal/assemble"
	"dynadoc/internal/config"
	"dynadoc/internal/diagnostic"
	"dynadoc/internal/goload"
	"dynadoc/internal/introspect"
)

// runner holds what one command invocation needs.
type runner struct {
	file   *config.File
	logger *zap.Logger
	diags  *diagnostic.Diagnostics
	loader *goload.Loader
}

func newRunner(v *viper.Viper) (*runner, error) {
	file, err := settings(v)
	if err != nil {
		return nil, err
	}

	logger := zap.NewNop()
	if v.GetBool("verbose") {
		logger, err = zap.NewDevelopment()
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
	}

	r := &runner{
		file:   file,
		logger: logger,
		diags:  &diagnostic.Diagnostics{},
	}

	r.loader, err = goload.New(goload.WithDir(v.GetString("dir")), goload.WithNotifier(r.notifier()))
	if err != nil {
		return nil, err
	}

	return r, nil
}

// settings loads the configuration file, if any, and applies flag and
// environment overrides.
func settings(v *viper.Viper) (*config.File, error) {
	file := config.Default()

	if path := v.GetString("config"); path != "" {
		var err error

		file, err = config.LoadFile(path)
		if err != nil {
			return nil, err
		}
	}

	if v.IsSet("style") {
		file.Style = v.GetString("style")
	}

	if v.IsSet("notify") {
		file.Notify = v.GetString("notify")
	}

	if v.IsSet("targets") {
		file.Introspection.Targets = splitList(v.GetStringSlice("targets"))
	}

	if v.IsSet("local-names") {
		file.LocalNames = v.GetBool("local-names")
	}

	if v.GetBool("no-preserve") {
		preserve := false
		file.Preserve = &preserve
	}

	err := file.Validate()
	if err != nil {
		return nil, err
	}

	return file, nil
}

func splitList(values []string) []string {
	var out []string

	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}

	return out
}

// notifier collects notifications at or above the configured level and
// logs them too.
func (r *runner) notifier() diagnostic.Notifier {
	level, err := r.file.Level()
	if err != nil {
		level = diagnostic.LevelAdmonition
	}

	return diagnostic.Threshold(level, diagnostic.Tee(r.diags, diagnostic.NewZapNotifier(r.logger)))
}

func (r *runner) introspectionContext() *introspect.Context {
	return introspect.NewContext(introspect.WithNotifier(r.notifier()))
}

func (r *runner) assembler() (*assemble.Assembler, error) {
	control, err := r.file.Control()
	if err != nil {
		return nil, err
	}

	renderer, err := r.file.Renderer()
	if err != nil {
		return nil, err
	}

	return assemble.New(
		assemble.WithContext(r.introspectionContext()),
		assemble.WithControl(control),
		assemble.WithRenderer(renderer),
		assemble.WithTable(r.file.Table()),
		assemble.WithPreserve(r.file.ShouldPreserve()),
	), nil
}

func (r *runner) load(ctx context.Context, patterns []string) ([]*introspect.Module, error) {
	start := time.Now()

	modules, err := r.loader.Load(ctx, patterns...)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("packages loaded",
		zap.Strings("patterns", patterns),
		zap.Int("modules", len(modules)),
		zap.Duration("elapsed", time.Since(start)))

	return modules, nil
}

func (r *runner) close() {
	_ = r.logger.Sync()
}

// lookup resolves a dotted member path such as "Order.Validate" within
// module. An empty path names the module itself.
func lookup(module *introspect.Module, path string) (introspect.Subject, error) {
	if path == "" {
		return module, nil
	}

	var (
		current introspect.Subject = module
		members                    = module.Members
	)

	for _, name := range strings.Split(path, ".") {
		next, ok := findMember(members, name)
		if !ok {
			return nil, fmt.Errorf("%s has no member %q", current.FullName(), name)
		}

		current = next

		lister, ok := next.(introspect.MemberLister)
		if ok {
			members = lister.MemberList()
		} else {
			members = nil
		}
	}

	return current, nil
}

func findMember(members []introspect.Member, name string) (introspect.Subject, bool) {
	for _, m := range members {
		if m.Name != name {
			continue
		}

		switch value := m.Value.(type) {
		case *introspect.Class:
			return value, true
		case *introspect.Function:
			return value, true
		case *introspect.Module:
			return value, true
		}
	}

	return nil, false
}
