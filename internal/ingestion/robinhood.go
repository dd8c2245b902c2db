// Package ingestion turns Robinhood transaction report CSVs into the
// transaction stream the ledger replays. Files are newest-first, so rows
// are reversed before being handed over.
package ingestion

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nathancheek/robinhood-capital-gains-estimator/internal/domain"
	"github.com/nathancheek/robinhood-capital-gains-estimator/internal/logger"
)

const dateFormat = "01/02/2006"

type Provider struct {
	log logger.Logger
}

func NewProvider(log logger.Logger) *Provider {
	if log == nil {
		log = logger.Nop{}
	}
	return &Provider{log: log}
}

// Load gathers transactions from the given file or directory references,
// in reference order, expanding globs that the shell did not. Unreadable
// references are warnings; a malformed row inside a recognized report is
// fatal, since every later transaction depends on it.
func (p *Provider) Load(refs []string) ([]domain.Transaction, error) {
	var paths []string
	for _, ref := range refs {
		matches, err := filepath.Glob(ref)
		if err != nil {
			return nil, fmt.Errorf("bad file pattern %q: %w", ref, err)
		}
		if len(matches) == 0 {
			p.log.Warnf("invalid file or directory: %s", ref)
			continue
		}
		paths = append(paths, matches...)
	}

	var txns []domain.Transaction
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			p.log.Warnf("invalid file or directory: %s", path)
			continue
		}
		if info.IsDir() {
			fromDir, err := p.loadDirectory(path)
			if err != nil {
				return nil, err
			}
			txns = append(txns, fromDir...)
			continue
		}
		fromFile, err := p.LoadFile(path)
		if err != nil {
			return nil, err
		}
		txns = append(txns, fromFile...)
	}
	return txns, nil
}

func (p *Provider) loadDirectory(dir string) ([]domain.Transaction, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	var txns []domain.Transaction
	for _, entry := range entries { // ReadDir sorts by filename
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			continue
		}
		fromFile, err := p.LoadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		txns = append(txns, fromFile...)
	}
	return txns, nil
}

var requiredColumns = []string{
	"activity_date",
	"instrument",
	"trans_code",
	"quantity",
	"price",
}

func determineColumnOrder(headerRow []string) (map[string]int, error) {
	columnIndices := map[string]int{}
	for i, h := range headerRow {
		h = strings.TrimPrefix(h, "\ufeff") // reports carry a UTF-8 BOM
		h = strings.ToLower(h)
		h = strings.ReplaceAll(h, " ", "_")
		for _, rc := range requiredColumns {
			if h == rc {
				columnIndices[h] = i
			}
		}
	}

	for _, rc := range requiredColumns {
		if _, ok := columnIndices[rc]; !ok {
			return nil, fmt.Errorf("missing required column '%s'", rc)
		}
	}

	return columnIndices, nil
}

// LoadFile parses one transaction report. A file that does not look like a
// Robinhood report at all is skipped with a warning; a report row that
// fails to parse aborts the load.
func (p *Provider) LoadFile(path string) ([]domain.Transaction, error) {
	p.log.Infof("importing %s", path)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // trailing disclaimer rows are shorter
	records, err := reader.ReadAll()
	if err != nil {
		p.log.Warnf("failed to parse file: %s: %s", path, err)
		return nil, nil
	}
	if len(records) == 0 {
		p.log.Warnf("failed to parse file: %s: empty", path)
		return nil, nil
	}

	ordering, err := determineColumnOrder(records[0])
	if err != nil {
		p.log.Warnf("failed to parse file: %s: %s", path, err)
		return nil, nil
	}

	var txns []domain.Transaction
	// Robinhood reports list newest transactions first; replay wants
	// oldest first.
	for i := len(records) - 1; i >= 1; i-- {
		record := records[i]
		txn, ok, err := p.parseRow(record, ordering)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, i+1, err)
		}
		if ok {
			txns = append(txns, txn)
		}
	}
	return txns, nil
}

func (p *Provider) parseRow(record []string, ordering map[string]int) (domain.Transaction, bool, error) {
	field := func(name string) string {
		idx := ordering[name]
		if idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	code := field("trans_code")
	kind, ok := domain.KindForTransCode(code)
	if !ok {
		return domain.Transaction{}, false, nil
	}
	instrument := field("instrument")
	if instrument == "" {
		return domain.Transaction{}, false, nil
	}

	date, err := time.Parse(dateFormat, field("activity_date"))
	if err != nil {
		return domain.Transaction{}, false, fmt.Errorf("failed to parse row: bad activity date: %w", err)
	}

	// SXCH rows suffix the quantity with an 'S'.
	quantity, err := decimal.NewFromString(strings.TrimSuffix(field("quantity"), "S"))
	if err != nil {
		return domain.Transaction{}, false, fmt.Errorf("failed to parse row: bad quantity: %w", err)
	}

	price := decimal.Zero
	if kind != domain.TransactionKind_Split && !domain.ZeroCostBasis(code) {
		raw := strings.ReplaceAll(strings.TrimPrefix(field("price"), "$"), ",", "")
		price, err = decimal.NewFromString(raw)
		if err != nil {
			return domain.Transaction{}, false, fmt.Errorf("failed to parse row: bad price: %w", err)
		}
	}

	p.log.Debugf("processing %s %s %s qty %s", date.Format("2006-01-02"), instrument, code, quantity)

	return domain.Transaction{
		Date:       date,
		Instrument: instrument,
		Kind:       kind,
		Quantity:   quantity,
		Price:      price,
	}, true, nil
}
