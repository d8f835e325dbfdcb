package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"
	"github.com/woozymasta/crom"
	"golang.org/x/sync/errgroup"
)

var errNoInput = errors.New("no input files given")

// extract writes every segment of every input file to its own output file.
func (u *uncrom) extract(ctx *cli.Context) error {
	files := ctx.Args().Slice()
	if len(files) == 0 {
		return errNoInput
	}
	if u.cfg.OutputDir != "" {
		if err := os.MkdirAll(u.cfg.OutputDir, 0o755); err != nil {
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx.Context)
	g.SetLimit(u.cfg.Jobs)
	for _, path := range files {
		path := path
		g.Go(func() error {
			return u.extractFile(gctx, path)
		})
	}

	return g.Wait()
}

// outputName returns where segment index of input is written.
func (u *uncrom) outputName(input string, index int) string {
	dir := u.cfg.OutputDir
	if dir == "" {
		dir = filepath.Dir(input)
	}

	return filepath.Join(dir, fmt.Sprintf("%s.%d%s", filepath.Base(input), index, u.cfg.Suffix))
}

func (u *uncrom) extractFile(ctx context.Context, path string) error {
	opts := u.cfg.decodeOptions()
	var rd *crom.Reader
	opts.OnWarning = u.warningLogger(path, &rd)

	rd, f, err := u.openCROM(path, opts)
	if err != nil {
		return err
	}
	defer f.Close()

	var written, skipped int
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		seg, out, err := rd.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		index := rd.Index() - 1
		if err != nil {
			var de *crom.DecodeError
			if u.cfg.KeepGoing && errors.As(err, &de) && de.Resumable() {
				u.log.Error("Skipping segment", "file", path, "segment", index, "err", err)
				skipped++
				continue
			}
			return fmt.Errorf("%s: segment %d: %w", path, index, err)
		}

		name := u.outputName(path, index)
		if err := writeOutput(name, out); err != nil {
			return err
		}
		written++
		u.log.Debug("Extracted segment", "file", path, "segment", index, "output", name,
			"bytes", len(out), "tokens", seg.TokenCount, "offset", seg.Offset)
	}

	u.log.Info("Extracted file", "file", path, "segments", written, "skipped", skipped)

	return nil
}

// writeOutput writes data to name, removing the file again if the write fails.
func writeOutput(name string, data []byte) error {
	if err := os.WriteFile(name, data, 0o644); err != nil {
		os.Remove(name)
		return err
	}

	return nil
}
