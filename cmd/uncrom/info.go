package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"
	"github.com/woozymasta/crom"
)

// info decodes every segment and prints one table per file. Decode errors are
// reported in the table rather than failing the command, as long as the
// container can still be walked.
func (u *uncrom) info(ctx *cli.Context) error {
	files := ctx.Args().Slice()
	if len(files) == 0 {
		return errNoInput
	}

	for _, path := range files {
		if err := u.describeFile(ctx.App.Writer, path); err != nil {
			return err
		}
	}

	return nil
}

func (u *uncrom) describeFile(w io.Writer, path string) error {
	opts := u.cfg.decodeOptions()
	var rd *crom.Reader
	opts.OnWarning = u.warningLogger(path, &rd)

	rd, f, err := u.openCROM(path, opts)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintf(w, "%s\n", path)
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Segment", "Offset", "Length", "Tables", "Compressed", "Tokens", "Literals", "Output", "Warnings", "Status"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetAutoWrapText(false)

	var failure error
	for {
		seg, out, err := rd.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		var de *crom.DecodeError
		if err != nil && (!errors.As(err, &de) || !de.Resumable()) {
			failure = fmt.Errorf("%s: segment %d: %w", path, rd.Index()-1, err)
			break
		}

		status := "ok"
		if err != nil {
			status = de.Err.Error()
		}
		table.Append([]string{
			strconv.Itoa(rd.Index() - 1),
			strconv.FormatInt(seg.Offset, 10),
			strconv.FormatInt(seg.Length, 10),
			strconv.Itoa(len(seg.HuffmanData)),
			strconv.Itoa(len(seg.Compressed)),
			strconv.FormatUint(uint64(seg.TokenCount), 10),
			strconv.Itoa(len(seg.Literals)),
			strconv.Itoa(len(out)),
			strconv.Itoa(len(seg.Warnings)),
			status,
		})
	}
	table.Render()

	return failure
}
