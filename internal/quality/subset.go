package quality

import (
	"encoding/json"

	"github.com/geostat-labs/biascope/internal/dataset"
	"github.com/geostat-labs/biascope/internal/labels"
)

// FilterEnglish keeps only records whose query contains no CJK characters,
// using the binary presence detector. The raw messages are filtered in
// parallel so the subset file preserves every original field.
func FilterEnglish(records []dataset.Record, raw []json.RawMessage, det labels.PresenceDetector) ([]dataset.Record, []json.RawMessage) {
	var keptRecords []dataset.Record
	var keptRaw []json.RawMessage
	for i := range records {
		if det.IsEnglish(records[i].QueryText()) {
			keptRecords = append(keptRecords, records[i])
			if raw != nil {
				keptRaw = append(keptRaw, raw[i])
			}
		}
	}
	return keptRecords, keptRaw
}
