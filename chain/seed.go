package chain

import (
	"math/big"
	"strconv"

	"github.com/openfund/crowdchain/models"
)

// seed installs the demo campaigns the mock chain ships with. They are placed
// directly into the store mid-flight (raised totals and contributor counts
// already set) rather than replayed through CreateCampaign, so the
// transaction log starts empty just as a freshly connected client would see.
func (l *Ledger) seed() {
	day := int64(86400)
	now := l.now()

	demo := []*models.Campaign{
		{
			Owner:              "0x742d35Cc6634C0532925a3b844Bc454e4438f44e",
			Title:              "Decentralized Education Platform",
			Description:        "Building a platform to provide free education through blockchain technology.",
			ImageURL:           "https://images.unsplash.com/photo-1522202176988-66273c2fd55f",
			Goal:               "10000000000000000000", // 10 ETH
			Deadline:           now + 30*day,
			AmountRaised:       "4500000000000000000", // 4.5 ETH
			Contributors:       []string{"0x123...", "0x456...", "0x789..."},
			ContributionsCount: 24,
			IsActive:           true,
		},
		{
			Owner:              "0x742d35Cc6634C0532925a3b844Bc454e4438f44e",
			Title:              "Community-Owned Solar Farm",
			Description:        "Funding a solar farm owned by the community with profits distributed to token holders.",
			ImageURL:           "https://images.unsplash.com/photo-1508514177221-188b1cf16e9d",
			Goal:               "50000000000000000000", // 50 ETH
			Deadline:           now + 45*day,
			AmountRaised:       "12000000000000000000", // 12 ETH
			Contributors:       []string{"0x123...", "0x456..."},
			ContributionsCount: 18,
			IsActive:           true,
		},
		{
			Owner:              "0x2B5AD5c4795c026514f8317c7a215E218DcCD6cF",
			Title:              "Decentralized Art Gallery",
			Description:        "Creating a platform for artists to showcase and sell their work without intermediaries.",
			ImageURL:           "https://images.unsplash.com/photo-1513364776144-60967b0f800f",
			Goal:               "15000000000000000000", // 15 ETH
			Deadline:           now + 20*day,
			AmountRaised:       "7200000000000000000", // 7.2 ETH
			Contributors:       []string{"0x123...", "0x456...", "0x789...", "0xabc..."},
			ContributionsCount: 32,
			IsActive:           true,
		},
	}

	for _, c := range demo {
		c.ID = strconv.Itoa(l.nextID)
		l.nextID++
		l.campaigns = append(l.campaigns, c)
		l.byID[c.ID] = c
		l.stats.CampaignCount++
		if raised, ok := new(big.Int).SetString(c.AmountRaised, 10); ok {
			l.totalRaised.Add(l.totalRaised, raised)
		}
	}
	l.stats.TotalRaised = l.totalRaised.String()
	l.logger.Infof("Seeded %d demo campaigns", len(demo))
}
