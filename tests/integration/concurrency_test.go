package integration

import (
	"bytes"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentWithdrawals fires 40 concurrent withdrawal requests against
// a wallet holding ₹3000 of withdrawable profit. The transaction around the
// read-check-update flow serializes them, so exactly 30 payouts of ₹100
// succeed and the rest fail the insufficient-funds check. The profit must
// never go negative.
func TestConcurrentWithdrawals(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	// Seed the wallet: one ₹5000 sale leaves ₹3000 withdrawable profit.
	id := app.createProduct(t, "Ebook Bundle", "5000")
	app.buy(t, id, "5000", "INR")

	concurrency := 40
	body := `{"amount":"100","upi_method":"phonepay","upi_id":"owner@ybl"}`

	var wg sync.WaitGroup
	var successCount atomic.Int64
	var insufficientCount atomic.Int64
	var otherCount atomic.Int64

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			resp, err := http.Post(app.server.URL+"/api/v1/wallet/withdrawals",
				"application/json", bytes.NewBufferString(body))
			if err != nil {
				otherCount.Add(1)
				return
			}
			defer resp.Body.Close()
			_, _ = io.ReadAll(resp.Body)

			switch resp.StatusCode {
			case http.StatusCreated:
				successCount.Add(1)
			case http.StatusPaymentRequired:
				insufficientCount.Add(1)
			default:
				otherCount.Add(1)
			}
		}()
	}

	wg.Wait()

	t.Logf("Concurrent withdrawals: %d succeeded, %d insufficient, %d other (out of %d)",
		successCount.Load(), insufficientCount.Load(), otherCount.Load(), concurrency)

	assert.Equal(t, int64(0), otherCount.Load(), "no request should fail outside the funds check")
	assert.Equal(t, int64(30), successCount.Load(), "exactly ₹3000/₹100 withdrawals can succeed")
	assert.Equal(t, int64(10), insufficientCount.Load())

	// Profit fully drained, never negative; earmarked funds untouched.
	status, resp := app.get(t, "/api/v1/wallet")
	require.Equal(t, http.StatusOK, status)
	wallet := dataOf(t, resp)
	assertDec(t, wallet, "withdrawable_profit", "0")
	assertDec(t, wallet, "balance", "2000")
	assertDec(t, wallet, "business_growth_fund", "1500")
	assertDec(t, wallet, "expense_coverage", "500")
}

// TestConcurrentSales verifies the split stays conserved when sales land
// concurrently on the shared wallet row.
func TestConcurrentSales(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	id := app.createProduct(t, "Poster", "200")

	concurrency := 25
	var wg sync.WaitGroup
	var successCount atomic.Int64

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			body := `{"product_id":"` + id + `","customer_id":"load@example.com","amount":"200","currency":"INR","payment_method":"card"}`
			resp, err := http.Post(app.server.URL+"/api/v1/purchases",
				"application/json", bytes.NewBufferString(body))
			if err != nil {
				return
			}
			defer resp.Body.Close()
			_, _ = io.ReadAll(resp.Body)
			if resp.StatusCode == http.StatusCreated {
				successCount.Add(1)
			}
		}()
	}

	wg.Wait()
	require.Equal(t, int64(concurrency), successCount.Load(), "all sales should be recorded")

	// 25 sales of ₹200: balance 5000, split 3000/1500/500.
	status, resp := app.get(t, "/api/v1/wallet")
	require.Equal(t, http.StatusOK, status)
	wallet := dataOf(t, resp)
	assertDec(t, wallet, "balance", "5000")
	assertDec(t, wallet, "withdrawable_profit", "3000")
	assertDec(t, wallet, "business_growth_fund", "1500")
	assertDec(t, wallet, "expense_coverage", "500")

	status, resp = app.get(t, "/api/v1/reports/sales")
	require.Equal(t, http.StatusOK, status)
	report := dataOf(t, resp)
	assert.Equal(t, float64(concurrency), report["total_sales"])
	assertDec(t, report, "total_revenue", "5000")
}
