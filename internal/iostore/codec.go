package iostore

import (
	"github.com/gnames/gndash/pkg/dataset"
	"github.com/gnames/gnfmt"
)

func encode(snap *dataset.Snapshot) ([]byte, error) {
	enc := gnfmt.GNjson{}
	res, err := enc.Encode(snap)
	if err != nil {
		return nil, EncodeError(snap.ID, err)
	}
	return res, nil
}

func decode(sessionID string, data []byte) (*dataset.Snapshot, error) {
	enc := gnfmt.GNjson{}
	var res dataset.Snapshot
	if err := enc.Decode(data, &res); err != nil {
		return nil, ReadError(sessionID, err)
	}
	return &res, nil
}
