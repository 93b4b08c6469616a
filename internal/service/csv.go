package service

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/jszwec/csvutil"

	"github.com/odmap/backend/internal/domain"
)

// DecodeTrips reads a day file. The header must carry every trip column;
// other columns are ignored.
func DecodeTrips(r io.Reader) ([]domain.TripRecord, error) {
	br := bufio.NewReader(r)
	if err := skipBOM(br); err != nil {
		return nil, fmt.Errorf("csv: failed to read header: %w", err)
	}

	cr := csv.NewReader(br)
	cr.ReuseRecord = true

	dec, err := csvutil.NewDecoder(cr)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("csv: empty file")
		}
		return nil, fmt.Errorf("csv: failed to read header: %w", err)
	}
	dec.DisallowMissingColumns = true

	var records []domain.TripRecord
	for {
		var rec domain.TripRecord
		err := dec.Decode(&rec)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: failed to decode line %d: %w", len(records)+2, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// skipBOM drops a leading UTF-8 byte-order mark so the first header column matches
func skipBOM(br *bufio.Reader) error {
	head, err := br.Peek(len(utf8BOM))
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	if bytes.Equal(head, utf8BOM) {
		_, err = br.Discard(len(utf8BOM))
		return err
	}
	return nil
}
