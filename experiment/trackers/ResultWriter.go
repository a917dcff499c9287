package trackers

import (
	"encoding/csv"
	"fmt"
	"io"
	"reflect"
	"strconv"

	"github.com/samuelfneumann/cliffwalk/experiment"
)

// DefaultColumns are the CSV columns of a sweep over tabular
// Q-Learning configurations
var DefaultColumns = []string{"alpha", "gamma", "epsilon", "max"}

// ResultWriter writes experiment Results as CSV rows. Each row holds
// the numeric fields of the Result's agent Config in declaration order
// followed by the Result's Max. Rows are flushed as they are tracked.
type ResultWriter struct {
	w       *csv.Writer
	columns []string
	header  bool
	err     error
}

// NewResultWriter returns a ResultWriter writing to w. If columns is
// not empty, it is written as a header before the first row.
func NewResultWriter(w io.Writer, columns ...string) *ResultWriter {
	return &ResultWriter{w: csv.NewWriter(w), columns: columns}
}

// TrackResult writes r as a CSV row. The first error encountered is
// kept and returned by Save.
func (r *ResultWriter) TrackResult(result experiment.Result) {
	if r.err != nil {
		return
	}

	if !r.header && len(r.columns) > 0 {
		r.header = true
		if r.err = r.w.Write(r.columns); r.err != nil {
			return
		}
	}

	row, err := fields(result.Config)
	if err != nil {
		r.err = err
		return
	}
	row = append(row, strconv.Itoa(result.Max))

	if r.err = r.w.Write(row); r.err != nil {
		return
	}
	r.w.Flush()
	r.err = r.w.Error()
}

// Save flushes any buffered rows and returns the first error that
// occurred while writing
func (r *ResultWriter) Save() error {
	if r.err != nil {
		return fmt.Errorf("save: %w", r.err)
	}
	r.w.Flush()
	if err := r.w.Error(); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

// fields formats the numeric fields of a Config struct
func fields(c interface{}) ([]string, error) {
	v := reflect.ValueOf(c)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, fmt.Errorf("fields: cannot format config of kind %v",
			v.Kind())
	}

	row := make([]string, 0, v.NumField())
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		switch f.Kind() {
		case reflect.Float32, reflect.Float64:
			row = append(row, strconv.FormatFloat(f.Float(), 'f', -1, 64))

		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32,
			reflect.Int64:
			row = append(row, strconv.FormatInt(f.Int(), 10))
		}
	}
	return row, nil
}
