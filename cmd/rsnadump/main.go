// rsnadump decodes a hex-encoded RSNE or WPA-IE and prints its fields,
// a diagnostic companion to the codec in internal/adapters/ie.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/go-rsna/rsna/internal/adapters/ie"
	"github.com/go-rsna/rsna/internal/core/domain"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s <hex-bytes>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  decodes a single RSNE (tag 48) or vendor-specific WPA-IE (tag 221)\n")
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	raw, err := hex.DecodeString(strings.TrimSpace(flag.Arg(0)))
	if err != nil {
		log.Fatalf("rsnadump: invalid hex input: %v", err)
	}
	if len(raw) < 2 {
		log.Fatalf("rsnadump: input too short to contain a tag/length header")
	}

	var info *domain.RSNInfo
	switch raw[0] {
	case ie.TagRSN:
		info, err = ie.ParseRSNE(raw)
	case ie.TagVendorSpecific:
		info, err = ie.ParseWPA(raw)
	default:
		log.Fatalf("rsnadump: unrecognized tag 0x%02x (expected 0x30 RSNE or 0xdd vendor-specific)", raw[0])
	}
	if err != nil {
		log.Fatalf("rsnadump: parse failed: %v", err)
	}

	dump(info)
}

func dump(info *domain.RSNInfo) {
	fmt.Printf("version: %d\n", info.Version)
	fmt.Printf("group cipher: %s\n", info.GroupCipher)
	fmt.Print("pairwise ciphers:")
	for _, c := range info.PairwiseCiphers {
		fmt.Printf(" %s", c)
	}
	fmt.Println()
	fmt.Print("akms:")
	for _, a := range info.AKMs {
		fmt.Printf(" %s", a)
	}
	fmt.Println()
	if info.HasCaps {
		fmt.Printf("capabilities: %+v\n", info.Caps)
	}
	for _, p := range info.PMKIDs {
		fmt.Printf("pmkid: %s\n", hex.EncodeToString(p[:]))
	}
	if info.GroupManagementCipher != nil {
		fmt.Printf("group management cipher: %s\n", *info.GroupManagementCipher)
	}
}
