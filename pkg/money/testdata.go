package money

import (
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

// TestDataGenerator produces statement-shaped test data: payer names,
// narration lines and naira amounts that read like real Nigerian bank
// exports.
type TestDataGenerator struct {
	faker *gofakeit.Faker
}

// NewTestDataGenerator creates a new test data generator with a random seed.
func NewTestDataGenerator() *TestDataGenerator {
	return &TestDataGenerator{faker: gofakeit.New(0)}
}

// NewTestDataGeneratorWithSeed creates a generator with a specific seed for reproducibility.
func NewTestDataGeneratorWithSeed(seed int64) *TestDataGenerator {
	return &TestDataGenerator{faker: gofakeit.New(seed)}
}

// TestDeposit is one generated statement credit.
type TestDeposit struct {
	Date      time.Time
	Narration string
	Payer     string
	Bank      string
	Amount    *Money
	Reference string
}

// ============================================================================
// Deposit Generation
// ============================================================================

// Deposit generates a single random statement credit.
func (g *TestDataGenerator) Deposit() TestDeposit {
	payer := g.PayerName()
	return TestDeposit{
		Date:      g.faker.DateRange(time.Now().AddDate(0, -3, 0), time.Now()),
		Narration: g.Narration(payer),
		Payer:     payer,
		Bank:      g.SenderBank(),
		Amount:    g.RandomAmount(50_000, 50_000_000), // ₦500.00 to ₦500,000.00
		Reference: "REF" + g.faker.DigitN(8),
	}
}

// Deposits generates count random statement credits.
func (g *TestDataGenerator) Deposits(count int) []TestDeposit {
	deposits := make([]TestDeposit, count)
	for i := 0; i < count; i++ {
		deposits[i] = g.Deposit()
	}
	return deposits
}

// RandomAmount generates a random Money value within a kobo range.
func (g *TestDataGenerator) RandomAmount(minKobo, maxKobo int64) *Money {
	if minKobo > maxKobo {
		minKobo, maxKobo = maxKobo, minKobo
	}
	kobo := g.faker.Int64() % (maxKobo - minKobo + 1)
	if kobo < 0 {
		kobo = -kobo
	}
	return New(minKobo + kobo)
}

// ============================================================================
// Narration and Name Generation
// ============================================================================

// Narration generates a random narration line crediting payer, in one
// of the shapes the extractors parse.
func (g *TestDataGenerator) Narration(payer string) string {
	switch g.faker.Number(0, 3) {
	case 0:
		return g.NIPNarration(payer)
	case 1:
		return g.NIPNarrationVia(payer, g.SenderBank())
	case 2:
		return fmt.Sprintf("NIP Transfer from %s/ref%s", strings.ToUpper(payer), g.faker.DigitN(6))
	default:
		return g.SettlementNarration()
	}
}

// NIPNarration is the bare interbank-transfer shape.
func (g *TestDataGenerator) NIPNarration(payer string) string {
	return fmt.Sprintf("NIP FRM %s-%s", strings.ToUpper(payer), g.faker.DigitN(10))
}

// NIPNarrationVia is the transfer shape that names the sending bank.
func (g *TestDataGenerator) NIPNarrationVia(payer, bank string) string {
	return fmt.Sprintf("NIP FRM %s-via %s ref %s", strings.ToUpper(payer), bank, g.faker.DigitN(6))
}

// SettlementNarration is a processor settlement line.
func (g *TestDataGenerator) SettlementNarration() string {
	return "PAYSTACK SETTLEMENT-BATCH " + g.faker.DigitN(4)
}

// PayerName returns a random Nigerian customer name.
func (g *TestDataGenerator) PayerName() string {
	first := nigerianFirstNames[g.faker.Number(0, len(nigerianFirstNames)-1)]
	last := nigerianSurnames[g.faker.Number(0, len(nigerianSurnames)-1)]
	return first + " " + last
}

// SenderBank returns a random Nigerian bank name.
func (g *TestDataGenerator) SenderBank() string {
	return senderBanks[g.faker.Number(0, len(senderBanks)-1)]
}

var nigerianFirstNames = []string{
	"Adaobi", "Amaka", "Bola", "Chiamaka", "Chinedu", "Efe", "Emeka",
	"Funke", "Halima", "Ibrahim", "Ifeanyi", "Kemi", "Musa", "Ngozi",
	"Nneka", "Olumide", "Segun", "Tunde", "Yusuf", "Zainab",
}

var nigerianSurnames = []string{
	"Abubakar", "Adebayo", "Adeyemi", "Balogun", "Bello", "Chukwu",
	"Danladi", "Eze", "Mohammed", "Nwosu", "Obi", "Ogunleye", "Okafor",
	"Okonkwo", "Uche",
}

var senderBanks = []string{
	"GTBank", "Zenith Bank", "Access Bank", "First Bank", "UBA",
	"Fidelity Bank", "Union Bank", "Sterling Bank", "Wema Bank",
	"Polaris Bank",
}
