package store

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
)

const (
	credentialRecordVersionV1 = 1
)

func encodeRecord(record *Record) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte(credentialRecordVersionV1)

	if err := binary.Write(&buf, binary.BigEndian, record.CreatedAt); err != nil {
		return nil, err
	}

	if err := writeString(&buf, record.ID); err != nil {
		return nil, err
	}
	if err := writeString(&buf, record.Username); err != nil {
		return nil, err
	}
	if err := writeString(&buf, record.PasswordHash); err != nil {
		return nil, err
	}

	if len(record.Roles) > 65535 {
		return nil, errors.New("credential record has too many roles")
	}
	if err := binary.Write(&buf, binary.BigEndian, uint16(len(record.Roles))); err != nil {
		return nil, err
	}
	for _, role := range record.Roles {
		if err := writeString(&buf, role); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

func decodeRecord(data []byte) (*Record, error) {
	reader := bytes.NewReader(data)

	version, err := reader.ReadByte()
	if err != nil {
		return nil, ErrCorruptRecord
	}
	if version != credentialRecordVersionV1 {
		return nil, ErrCorruptRecord
	}

	record := &Record{}

	if err := binary.Read(reader, binary.BigEndian, &record.CreatedAt); err != nil {
		return nil, ErrCorruptRecord
	}

	if record.ID, err = readString(reader); err != nil {
		return nil, ErrCorruptRecord
	}
	if record.Username, err = readString(reader); err != nil {
		return nil, ErrCorruptRecord
	}
	if record.PasswordHash, err = readString(reader); err != nil {
		return nil, ErrCorruptRecord
	}

	var roleCount uint16
	if err := binary.Read(reader, binary.BigEndian, &roleCount); err != nil {
		return nil, ErrCorruptRecord
	}
	if roleCount > 0 {
		record.Roles = make([]string, 0, roleCount)
		for i := uint16(0); i < roleCount; i++ {
			role, err := readString(reader)
			if err != nil {
				return nil, ErrCorruptRecord
			}
			record.Roles = append(record.Roles, role)
		}
	}

	return record, nil
}

func writeString(buf *bytes.Buffer, s string) error {
	if len(s) > 65535 {
		return errors.New("credential record field too long")
	}
	if err := binary.Write(buf, binary.BigEndian, uint16(len(s))); err != nil {
		return err
	}
	buf.WriteString(s)
	return nil
}

func readString(reader *bytes.Reader) (string, error) {
	var length uint16
	if err := binary.Read(reader, binary.BigEndian, &length); err != nil {
		return "", err
	}

	raw := make([]byte, length)
	if _, err := io.ReadFull(reader, raw); err != nil {
		return "", err
	}

	return string(raw), nil
}
