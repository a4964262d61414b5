package transport

import (
	"log"
	"math/big"
	"strings"
)

// encodeInt renders v as the decimal line put on the wire. big.Int.String
// never produces scientific notation, so the sender-side normalization the
// source performs is structurally a no-op here; it is kept as an explicit
// step so the wire contract stays documented at the call site.
func encodeInt(v *big.Int) []byte {
	normalized := v.String()
	return []byte(normalized + "\n")
}

// decodeInt parses one received line into an integer. Plain decimal text is
// the expected case; a big.Float fallback tolerates "1.0"-style and
// scientific-notation payloads that round-trip to an exact integer. Anything
// else is logged and recorded as zero rather than aborting the round.
func decodeInt(line string) *big.Int {
	s := strings.TrimSpace(line)
	if s == "" {
		log.Printf("[warn] (transport) empty payload, recorded as 0")
		return big.NewInt(0)
	}
	if v, ok := new(big.Int).SetString(s, 10); ok {
		return v
	}
	if f, _, err := big.ParseFloat(s, 10, 512, big.ToNearestEven); err == nil {
		if i, acc := f.Int(nil); acc == big.Exact {
			return i
		}
	}
	log.Printf("[warn] (transport) unparseable payload %q, recorded as 0", s)
	return big.NewInt(0)
}
