package domain

import "fmt"

type RecordKind int

const (
	RecordBlob RecordKind = iota
	RecordNumeric
)

// ArchiveRecord é um registro nomeado produzido por um importador para um dia
type ArchiveRecord struct {
	Name  string
	Kind  RecordKind
	Blob  []byte
	Value float64
}

func NewBlobRecord(name string, blob []byte) ArchiveRecord {
	return ArchiveRecord{Name: name, Kind: RecordBlob, Blob: blob}
}

func NewNumericRecord(name string, value float64) ArchiveRecord {
	return ArchiveRecord{Name: name, Kind: RecordNumeric, Value: value}
}

// SubtableRecordName nomeia o blob de uma subtabela serializada
func SubtableRecordName(name string, subtableID int) string {
	if subtableID == 0 {
		return name
	}
	return fmt.Sprintf("%s_%d", name, subtableID)
}
