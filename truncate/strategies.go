package truncate

import "strings"

const replacementChar = "\uFFFD"

// cut keeps keep tokens of ids according to the strategy and joins the
// decoded pieces with the marker.
func (t *Truncator) cut(ids []int, keep int) (string, error) {
	switch t.strategy {
	case FromStart:
		tail, err := t.codec.Decode(ids[len(ids)-keep:])
		if err != nil {
			return "", err
		}
		return t.marker + strings.TrimLeft(tail, replacementChar), nil

	case FromMiddle:
		headN := keep / 2
		tailN := keep - headN
		head, err := t.codec.Decode(ids[:headN])
		if err != nil {
			return "", err
		}
		tail, err := t.codec.Decode(ids[len(ids)-tailN:])
		if err != nil {
			return "", err
		}
		return strings.TrimRight(head, replacementChar) + t.marker + strings.TrimLeft(tail, replacementChar), nil

	default:
		head, err := t.codec.Decode(ids[:keep])
		if err != nil {
			return "", err
		}
		return strings.TrimRight(head, replacementChar) + t.marker, nil
	}
}
