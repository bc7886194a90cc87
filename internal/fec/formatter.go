package fec

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"
)

// Encoding selects the byte encoding of the rendered file. The DGFiP accepts
// both UTF-8 and ISO-8859-15 submissions.
type Encoding string

const (
	EncodingUTF8  Encoding = "utf-8"
	EncodingLatin Encoding = "iso-8859-15"
)

// Column names and order are fixed by Article A47 A-1; never reorder.
var fecColumns = []string{
	"JournalCode", "JournalLib", "EcritureNum", "EcritureDate",
	"CompteNum", "CompteLib", "CompAuxNum", "CompAuxLib",
	"PieceRef", "PieceDate", "EcritureLib", "Debit", "Credit",
	"EcritureLet", "DateLet", "ValidDate", "MontantDevise", "Idevise",
}

// Writer renders journal lines into the fixed 18-column, tab-separated FEC
// layout with CRLF row endings. It applies no filtering or ordering; rows
// come out exactly as they come in.
type Writer struct {
	out io.Writer
}

// NewWriter wraps w, transcoding to ISO-8859-15 when requested.
func NewWriter(w io.Writer, enc Encoding) *Writer {
	if enc == EncodingLatin {
		w = charmap.ISO8859_15.NewEncoder().Writer(w)
	}
	return &Writer{out: w}
}

// WriteHeader emits the mandatory column-name row.
func (w *Writer) WriteHeader() error {
	return w.writeRow(fecColumns)
}

// WriteLines emits one row per journal line.
func (w *Writer) WriteLines(lines []JournalLine) error {
	for _, line := range lines {
		fields := []string{
			line.JournalCode,
			line.JournalLabel,
			strconv.Itoa(line.EntryNumber),
			formatDate(line.EntryDate),
			line.AccountCode,
			line.AccountLabel,
			line.AuxAccountCode,
			line.AuxAccountLbl,
			line.PieceRef,
			formatDate(line.PieceDate),
			line.Label,
			formatAmount(line.Debit),
			formatAmount(line.Credit),
			"", // EcritureLet
			"", // DateLet
			formatDate(line.ValidationDate),
			"", // MontantDevise
			"", // Idevise
		}
		if err := w.writeRow(fields); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeRow(fields []string) error {
	if _, err := io.WriteString(w.out, strings.Join(fields, "\t")); err != nil {
		return fmt.Errorf("fec: write row: %w", err)
	}
	if _, err := io.WriteString(w.out, "\r\n"); err != nil {
		return fmt.Errorf("fec: write row: %w", err)
	}
	return nil
}

// formatAmount renders a monetary value with exactly two decimals and a comma
// separator, e.g. 1200.00 -> "1200,00". This is a legal encoding and must not
// follow the host locale.
func formatAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	return strings.Replace(s, ".", ",", 1)
}

// formatDate renders YYYYMMDD with zero padding and no separators.
func formatDate(t time.Time) string {
	return t.Format("20060102")
}
