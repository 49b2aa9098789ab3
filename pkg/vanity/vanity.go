// Package vanity is the library entry point for finding Solana vanity addresses.
//
//	res, err := vanity.FindVanityAddressWithSuffix("pump", runtime.NumCPU())
//	if err != nil {
//		return err
//	}
//	fmt.Println(res.Address, solana.New().EncodeSecret(res.Keypair))
//
// Searches run until a match is found. Use FindVanityAddressContext to bound them.
package vanity

import (
	"context"
	"fmt"

	"github.com/Amr-9/pumpvanity/pkg/generator"
	"github.com/Amr-9/pumpvanity/pkg/generator/bitcoin"
	"github.com/Amr-9/pumpvanity/pkg/generator/cpu"
	"github.com/Amr-9/pumpvanity/pkg/generator/solana"
	"github.com/Amr-9/pumpvanity/pkg/generator/tron"
)

var engine = cpu.NewCPUGenerator()

// FindVanityAddress searches for a Solana address starting with prefix.
func FindVanityAddress(prefix string, threads int) (*generator.SearchResult, error) {
	return FindVanityAddressContext(context.Background(), generator.Prefix(prefix), threads)
}

// FindVanityAddressWithSuffix searches for a Solana address ending with suffix.
func FindVanityAddressWithSuffix(suffix string, threads int) (*generator.SearchResult, error) {
	return FindVanityAddressContext(context.Background(), generator.Suffix(suffix), threads)
}

// FindVanityAddressWithBoth searches for a Solana address with both a prefix and a suffix.
func FindVanityAddressWithBoth(prefix, suffix string, threads int) (*generator.SearchResult, error) {
	return FindVanityAddressContext(context.Background(), generator.Both(prefix, suffix), threads)
}

// FindVanityAddressContext searches for a Solana address matching spec until
// one is found or ctx is done.
func FindVanityAddressContext(ctx context.Context, spec generator.MatchSpec, threads int) (*generator.SearchResult, error) {
	return engine.Search(ctx, solana.New(), spec, threads)
}

// SchemeFor returns the key scheme for network.
func SchemeFor(network generator.Network) (generator.Scheme, error) {
	switch network {
	case generator.Solana:
		return solana.New(), nil
	case generator.Tron:
		return tron.New(), nil
	case generator.Bitcoin:
		return bitcoin.New(), nil
	default:
		return nil, fmt.Errorf("no key scheme for network %s", network)
	}
}
