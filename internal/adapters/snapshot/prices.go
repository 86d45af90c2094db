package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/andrescamacho/hideout-go/internal/domain/market"
)

// fleaMarketVendor is excluded when picking the best trader offer
const fleaMarketVendor = "flea-market"

type rawPriceEnvelope struct {
	Data struct {
		Items []rawPricedItem `json:"items"`
	} `json:"data"`
}

type rawPricedItem struct {
	NormalizedName string         `json:"normalizedName"`
	Avg24hPrice    *int           `json:"avg24hPrice"`
	Low24hPrice    *int           `json:"low24hPrice"`
	TraderName     string         `json:"traderName"`
	TraderPrice    int            `json:"traderPrice"`
	SellFor        []rawSellOffer `json:"sellFor"`
}

type rawSellOffer struct {
	Vendor struct {
		Name           string `json:"name"`
		NormalizedName string `json:"normalizedName"`
	} `json:"vendor"`
	Price int `json:"price"`
}

// DecodePrices parses a price feed. It accepts the GraphQL envelope
// {"data":{"items":[...]}} with sellFor offers, or a bare array of flat
// price records. Missing prices read as 0. The game mode is left empty for
// the import command to fill in.
func DecodePrices(r io.Reader) ([]market.Price, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read price feed: %w", err)
	}

	var raw []rawPricedItem
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, fmt.Errorf("failed to decode price array: %w", err)
		}
	} else {
		var env rawPriceEnvelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, fmt.Errorf("failed to decode price feed: %w", err)
		}
		raw = env.Data.Items
	}

	prices := make([]market.Price, 0, len(raw))
	for _, item := range raw {
		price := market.Price{
			NormalizedName: item.NormalizedName,
			TraderName:     item.TraderName,
			TraderPrice:    item.TraderPrice,
		}
		if item.Avg24hPrice != nil {
			price.Avg24hPrice = *item.Avg24hPrice
		}
		if item.Low24hPrice != nil {
			price.Low24hPrice = *item.Low24hPrice
		}
		if offer, ok := bestTraderOffer(item.SellFor); ok && offer.Price > price.TraderPrice {
			price.TraderName = offer.Vendor.Name
			price.TraderPrice = offer.Price
		}
		prices = append(prices, price)
	}
	return prices, nil
}

func bestTraderOffer(offers []rawSellOffer) (rawSellOffer, bool) {
	var best rawSellOffer
	found := false
	for _, o := range offers {
		if o.Vendor.NormalizedName == fleaMarketVendor {
			continue
		}
		if !found || o.Price > best.Price {
			best = o
			found = true
		}
	}
	return best, found
}
