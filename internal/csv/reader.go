package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/wojciech-zurek/the-secret-project/internal/core"
)

// row is a raw input row before conversion to a core.Record.
type row struct {
	Kind   string `validate:"required,oneof=deposit withdrawal dispute resolve chargeback"`
	Client string `validate:"required"`
	Tx     string `validate:"required"`
	Amount string
}

// Reader streams well-typed records out of a headered CSV input
// (`type, client, tx, amount`). Fields are whitespace-trimmed. Any malformed
// row is an error; callers are expected to abort the run on it rather than
// skip the row, since later records may depend on the broken one.
type Reader struct {
	csv        *csv.Reader
	validate   *validator.Validate
	headerRead bool
	line       int
}

func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	// Dispute-family rows may omit the amount column entirely.
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	return &Reader{
		csv:      cr,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Read returns the next record, or io.EOF once the input is exhausted.
func (r *Reader) Read() (core.Record, error) {
	if !r.headerRead {
		if err := r.readHeader(); err != nil {
			return core.Record{}, err
		}
	}

	fields, err := r.csv.Read()
	if err != nil {
		if err == io.EOF {
			return core.Record{}, io.EOF
		}

		return core.Record{}, fmt.Errorf("read input: %w", err)
	}

	r.line++
	rec, err := r.parse(fields)
	if err != nil {
		return core.Record{}, fmt.Errorf("line %d: %w", r.line, err)
	}

	return rec, nil
}

// ReadAll drains the reader. Mostly for tests; production hosts stream.
func (r *Reader) ReadAll() ([]core.Record, error) {
	var records []core.Record
	for {
		rec, err := r.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}

		records = append(records, rec)
	}
}

func (r *Reader) readHeader() error {
	fields, err := r.csv.Read()
	if err != nil {
		if err == io.EOF {
			return io.EOF
		}

		return fmt.Errorf("read header: %w", err)
	}

	r.headerRead = true
	r.line = 1

	if len(fields) < 3 {
		return fmt.Errorf("malformed header: %q", strings.Join(fields, ","))
	}
	for i, want := range []string{"type", "client", "tx"} {
		if strings.TrimSpace(fields[i]) != want {
			return fmt.Errorf("malformed header: column %d is %q, want %q", i+1, strings.TrimSpace(fields[i]), want)
		}
	}

	return nil
}

func (r *Reader) parse(fields []string) (core.Record, error) {
	if len(fields) < 3 || len(fields) > 4 {
		return core.Record{}, fmt.Errorf("expected 3 or 4 fields, got %d", len(fields))
	}

	raw := row{
		Kind:   strings.TrimSpace(fields[0]),
		Client: strings.TrimSpace(fields[1]),
		Tx:     strings.TrimSpace(fields[2]),
	}
	if len(fields) == 4 {
		raw.Amount = strings.TrimSpace(fields[3])
	}

	if err := r.validate.Struct(raw); err != nil {
		return core.Record{}, fmt.Errorf("invalid record: %w", err)
	}

	kind, err := core.ParseKind(raw.Kind)
	if err != nil {
		return core.Record{}, err
	}

	client, err := strconv.ParseUint(raw.Client, 10, 16)
	if err != nil {
		return core.Record{}, fmt.Errorf("invalid client id %q: %w", raw.Client, err)
	}

	tx, err := strconv.ParseUint(raw.Tx, 10, 32)
	if err != nil {
		return core.Record{}, fmt.Errorf("invalid transaction id %q: %w", raw.Tx, err)
	}

	switch kind {
	case core.KindDeposit, core.KindWithdrawal:
		amount, err := parseAmount(raw.Amount)
		if err != nil {
			return core.Record{}, err
		}

		return core.NewAmountRecord(kind, core.ClientID(client), core.TxID(tx), amount), nil

	default:
		if raw.Amount != "" {
			return core.Record{}, fmt.Errorf("unexpected amount on %s record", kind)
		}

		return core.NewRecord(kind, core.ClientID(client), core.TxID(tx)), nil
	}
}

// parseAmount accepts any decimal with at most four fractional digits. Sign
// is not checked here: negative amounts are a processing rejection, not an
// ingestion failure.
func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Decimal{}, fmt.Errorf("missing amount")
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}

	if !amount.Equal(amount.Truncate(4)) {
		return decimal.Decimal{}, fmt.Errorf("amount %q has more than 4 decimal places", s)
	}

	return amount, nil
}
