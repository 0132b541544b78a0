package superdarn

import (
	log "github.com/sirupsen/logrus"

	"github.com/superdarn/godarn/dmap"
)

// Write validates the records against the schema and writes them to the
// named file in DMAP format.
func Write(records []*dmap.Record, schema Schema, path string) error {
	if err := validateAll(records, schema, path); err != nil {
		return err
	}
	if err := dmap.NewWriter(records).WriteFile(path); err != nil {
		return err
	}
	log.WithFields(log.Fields{"file": path, "format": schema.Name, "records": len(records)}).
		Debug("superdarn: wrote")
	return nil
}

// WriteStream validates the records against the schema and encodes them
// into a DMAP byte stream.
func WriteStream(records []*dmap.Record, schema Schema) ([]byte, error) {
	if err := validateAll(records, schema, "stream"); err != nil {
		return nil, err
	}
	return dmap.NewWriter(records).Stream()
}

// WriteFitacf writes records as a FITACF file.
func WriteFitacf(records []*dmap.Record, path string) error { return Write(records, Fitacf, path) }

// WriteRawacf writes records as a RAWACF file.
func WriteRawacf(records []*dmap.Record, path string) error { return Write(records, Rawacf, path) }

// WriteIqdat writes records as an IQDAT file.
func WriteIqdat(records []*dmap.Record, path string) error { return Write(records, Iqdat, path) }

// WriteGrid writes records as a GRID file.
func WriteGrid(records []*dmap.Record, path string) error { return Write(records, Grid, path) }

// WriteMap writes records as a MAP file.
func WriteMap(records []*dmap.Record, path string) error { return Write(records, Map, path) }

// WriteDmap writes records in DMAP format without any schema checks. It
// is up to the caller to make sure the fields are sensible.
func WriteDmap(records []*dmap.Record, path string) error {
	return dmap.NewWriter(records).WriteFile(path)
}

func validateAll(records []*dmap.Record, schema Schema, file string) error {
	for i, rec := range records {
		if err := checkExtra(rec, schema, i, file); err != nil {
			return err
		}
		if err := checkMissing(rec, schema, i, file); err != nil {
			return err
		}
		if err := checkTypes(rec, schema, i); err != nil {
			return err
		}
	}
	return nil
}

func allowedFields(schema Schema) Fields {
	allowed := Fields{}
	for name, t := range schema.Required {
		allowed[name] = t
	}
	for _, group := range schema.Optional {
		for name, t := range group {
			allowed[name] = t
		}
	}
	return allowed
}

func checkExtra(rec *dmap.Record, schema Schema, idx int, file string) error {
	allowed := allowedFields(schema)
	var extra []string
	for _, name := range rec.Names() {
		if _, ok := allowed[name]; !ok {
			extra = append(extra, name)
		}
	}
	if len(extra) > 0 {
		return &ExtraFieldError{File: file, Record: idx, Fields: extra}
	}
	return nil
}

func checkTypes(rec *dmap.Record, schema Schema, idx int) error {
	allowed := allowedFields(schema)
	wrong := map[string]dmap.Type{}
	for _, name := range rec.Names() {
		want, ok := allowed[name]
		if !ok {
			continue
		}
		var got dmap.Type
		if s, ok := rec.Scalar(name); ok {
			got = s.Type
		} else if a, ok := rec.Array(name); ok {
			got = a.Type
		}
		if got != want {
			wrong[name] = want
		}
	}
	if len(wrong) > 0 {
		return &FormatError{Record: idx, Fields: wrong}
	}
	return nil
}
