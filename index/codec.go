package index

import (
	"cmp"

	"github.com/relnova/petrodb/codec"
)

// pageEnvelope lets a reader learn whether a page holds a leaf or an
// internal node before it knows which generic instantiation to decode
// the payload as.
type pageEnvelope struct {
	PageType PAGE_TYPE
	Payload  []byte
}

func codecMarshalHeader(h headerPage) ([]byte, error) {
	return codec.ToBytes(h)
}

func codecUnmarshalHeader(data []byte) (headerPage, error) {
	return codec.FromBytes[headerPage](data)
}

func peekPageType(data []byte) (PAGE_TYPE, error) {
	env, err := codec.Unmarshal[pageEnvelope](data)
	if err != nil {
		return INVALID_PAGE, err
	}
	return env.PageType, nil
}

func encodeLeaf[K cmp.Ordered, V any](p *leafPage[K, V]) ([]byte, error) {
	payload, err := codec.Marshal(p)
	if err != nil {
		return nil, err
	}
	return codec.ToBytes(pageEnvelope{PageType: LEAF_PAGE, Payload: payload})
}

func decodeLeaf[K cmp.Ordered, V any](data []byte) (*leafPage[K, V], error) {
	env, err := codec.Unmarshal[pageEnvelope](data)
	if err != nil {
		return nil, err
	}

	page, err := codec.Unmarshal[leafPage[K, V]](env.Payload)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func encodeInternal[K cmp.Ordered](p *internalPage[K]) ([]byte, error) {
	payload, err := codec.Marshal(p)
	if err != nil {
		return nil, err
	}
	return codec.ToBytes(pageEnvelope{PageType: INTERNAL_PAGE, Payload: payload})
}

func decodeInternal[K cmp.Ordered](data []byte) (*internalPage[K], error) {
	env, err := codec.Unmarshal[pageEnvelope](data)
	if err != nil {
		return nil, err
	}

	page, err := codec.Unmarshal[internalPage[K]](env.Payload)
	if err != nil {
		return nil, err
	}
	return &page, nil
}
