package main

import (
	"bytes"

	"github.com/seqsense/pcgol/pc"

	"github.com/seqsense/starfield/blob"
)

func exportPCD(pp *pc.PointCloud) (interface{}, error) {
	var buf bytes.Buffer
	if err := pc.Marshal(pp, &buf); err != nil {
		return nil, err
	}
	return blob.New(buf.Bytes(), "application/x-pcd").JS(), nil
}
