package superdarn

import (
	log "github.com/sirupsen/logrus"

	"github.com/superdarn/godarn/dmap"
)

// Read reads a DMAP file, verifies its structural integrity, checks every
// record against the schema and returns the flattened records.
func Read(path string, schema Schema) ([]Record, error) {
	r, err := dmap.NewReader(path)
	if err != nil {
		return nil, err
	}
	return readAll(r, path, schema)
}

// ReadStream decodes an in-memory DMAP byte stream the same way Read
// reads a file.
func ReadStream(stream []byte, schema Schema) ([]Record, error) {
	r, err := dmap.NewStreamReader(stream)
	if err != nil {
		return nil, err
	}
	return readAll(r, "stream", schema)
}

func readAll(r *dmap.Reader, file string, schema Schema) ([]Record, error) {
	if err := r.CheckIntegrity(); err != nil {
		return nil, err
	}
	recs, err := r.ReadRecords()
	if err != nil {
		return nil, err
	}
	out := make([]Record, len(recs))
	for i, rec := range recs {
		if err := checkMissing(rec, schema, i, file); err != nil {
			return nil, err
		}
		out[i] = FromDmap(rec)
	}
	log.WithFields(log.Fields{"file": file, "format": schema.Name, "records": len(out)}).
		Debug("superdarn: read")
	return out, nil
}

// ReadFitacf reads a FITACF file.
func ReadFitacf(path string) ([]Record, error) { return Read(path, Fitacf) }

// ReadRawacf reads a RAWACF file.
func ReadRawacf(path string) ([]Record, error) { return Read(path, Rawacf) }

// ReadIqdat reads an IQDAT file.
func ReadIqdat(path string) ([]Record, error) { return Read(path, Iqdat) }

// ReadGrid reads a GRID file.
func ReadGrid(path string) ([]Record, error) { return Read(path, Grid) }

// ReadMap reads a MAP file.
func ReadMap(path string) ([]Record, error) { return Read(path, Map) }

// ReadDmap reads any DMAP file without schema checks.
func ReadDmap(path string) ([]Record, error) {
	r, err := dmap.NewReader(path)
	if err != nil {
		return nil, err
	}
	recs, err := r.ReadRecords()
	if err != nil {
		return nil, err
	}
	out := make([]Record, len(recs))
	for i, rec := range recs {
		out[i] = FromDmap(rec)
	}
	return out, nil
}

// checkMissing verifies that all required fields and, for each optional
// group that is present at all, the whole group appear in the record.
func checkMissing(rec *dmap.Record, schema Schema, idx int, file string) error {
	var missing []string
	for name := range schema.Required {
		if !rec.Has(name) {
			missing = append(missing, name)
		}
	}
	for _, group := range schema.Optional {
		present := 0
		for name := range group {
			if rec.Has(name) {
				present++
			}
		}
		if present == 0 || present == len(group) {
			continue
		}
		for name := range group {
			if !rec.Has(name) {
				missing = append(missing, name)
			}
		}
	}
	if len(missing) > 0 {
		return &FieldMissingError{File: file, Record: idx, Fields: missing}
	}
	return nil
}
