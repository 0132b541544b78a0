package superdarn

// BuildScan assigns a scan number to every record based on the per-record
// scan flag: a flag of +1 or -1 marks the first beam of a new scan and a
// flag of 0 continues the current one. The returned slice has one entry
// per record.
func BuildScan(records []Record) ([]int, error) {
	scans := make([]int, len(records))
	n := 0
	for i, rec := range records {
		flag, err := rec.Int("scan")
		if err != nil {
			return nil, err
		}
		if flag == 1 || flag == -1 {
			n++
		}
		scans[i] = n
	}
	return scans, nil
}

// ScanRecords returns the records belonging to the given scan number, as
// numbered by BuildScan starting at 1.
func ScanRecords(records []Record, scan int) ([]Record, error) {
	scans, err := BuildScan(records)
	if err != nil {
		return nil, err
	}
	var out []Record
	for i, s := range scans {
		if s == scan {
			out = append(out, records[i])
		}
	}
	return out, nil
}
