package report

import (
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"

	"github.com/samcharles93/cbtool/pkg/cb"
)

// CID renders a package hash as a CIDv1 with the raw codec over a
// 20-byte BLAKE3 multihash, so it can be looked up in content-addressed stores.
func CID(h cb.Hash) string {
	id, err := HashCID(h)
	if err != nil {
		return ""
	}
	return id.String()
}

func HashCID(h cb.Hash) (cid.Cid, error) {
	mh, err := multihash.Encode(h[:], multihash.BLAKE3)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, mh), nil
}
