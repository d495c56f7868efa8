// Command tagframe lists, formats, filters and edits the tags of audio
// files.
//
// Usage:
//
//	tagframe [flags] <files...>
//
// Without flags the frames of both tags are listed. -format prints one
// line per file, -filter restricts the files to those passing the
// expression and -set changes frames and saves the files.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/simonhull/tagframe"
)

type setFlags []string

func (s *setFlags) String() string     { return strings.Join(*s, ", ") }
func (s *setFlags) Set(v string) error { *s = append(*s, v); return nil }

func main() {
	var (
		verbose  = flag.Bool("v", false, "log debug messages")
		expr     = flag.String("filter", "", "only process files passing `expression`")
		format   = flag.String("format", "", "print `format` for each file instead of the frames")
		tagNum   = flag.Int("tag", 2, "tag to edit, 1 or 2")
		backup   = flag.String("backup", "", "keep the original file with `suffix` when saving")
		codes    = flag.Bool("codes", false, "list the format codes and filter operators")
		version  = flag.Bool("version", false, "print version and supported formats")
		settings setFlags
	)
	flag.Var(&settings, "set", "set frame `name=value`, may be repeated")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "Usage: tagframe [flags] <files...>")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *version {
		info := tagframe.GetVersionInfo()
		fmt.Printf("tagframe %s (%s, %s)\n", info.Version, info.GitCommit, info.GoVersion)
		fmt.Printf("read:  %v\nwrite: %v\n", info.Readable, info.Writable)
		return
	}
	if *codes {
		fmt.Print(tagframe.FormatToolTip(false))
		return
	}
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, log, flag.Args(), *expr, *format, tagframe.TagNumber(*tagNum-1), settings, *backup); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logrus.Logger, paths []string, expr, format string,
	n tagframe.TagNumber, settings []string, backup string) error {
	files, err := tagframe.OpenMany(ctx, paths, tagframe.WithLogger(log))
	if err != nil {
		return err
	}
	defer func() {
		for _, f := range files {
			f.Close()
		}
	}()

	selected := files
	if expr != "" {
		flt, err := tagframe.NewFileFilter(expr, log)
		if err != nil {
			return err
		}
		results, err := tagframe.FilterMany(ctx, flt, files...)
		if err != nil {
			return err
		}
		selected = nil
		for _, r := range results {
			if r.Passes {
				selected = append(selected, r.File)
			}
		}
	}

	for _, f := range selected {
		for _, w := range f.Warnings {
			log.WithField("path", f.Path()).Warn(w)
		}
		switch {
		case len(settings) > 0:
			if err := apply(f, n, settings, backup); err != nil {
				return fmt.Errorf("%s: %w", f.Path(), err)
			}
			fmt.Printf("saved %s\n", f.Path())
		case format != "":
			fmt.Println(f.FormatString(format))
		default:
			list(f)
		}
	}
	return nil
}

func apply(f *tagframe.File, n tagframe.TagNumber, settings []string, backup string) error {
	frames := tagframe.NewFrameCollection()
	for _, s := range settings {
		name, value, ok := strings.Cut(s, "=")
		if !ok || name == "" {
			return fmt.Errorf("invalid setting %q, want name=value", s)
		}
		et := tagframe.ExtendedTypeFromName(name)
		if et.Type != tagframe.TypeOther {
			et.Name = ""
		}
		frames.Insert(tagframe.NewFrame(et.Type, value, et.Name))
	}
	if err := f.SetFrames(n, &frames); err != nil {
		return err
	}

	var opts []tagframe.SaveOption
	if backup != "" {
		opts = append(opts, tagframe.WithBackup(backup))
	}
	err := f.Save(opts...)
	var uwe *tagframe.UnsupportedWriteError
	if errors.As(err, &uwe) {
		return fmt.Errorf("%s files cannot be written: %w", f.Format, err)
	}
	return err
}

func list(f *tagframe.File) {
	fmt.Printf("%s (%s, %d bytes)\n", f.Path(), f.Format, f.Size)
	fmt.Printf("  %s\n", f.Info())
	for _, n := range []tagframe.TagNumber{tagframe.Tag1, tagframe.Tag2} {
		if !f.HasTag(n) {
			continue
		}
		frames := f.Frames(n)
		fmt.Printf("  Tag %d: %s\n", n+1, f.TagFormat(n))
		for frame := range frames.All() {
			fmt.Printf("    %-24s %s\n", frame.DisplayName(), frame.Value())
		}
	}
}
