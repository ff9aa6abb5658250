package dispatch

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sakkelaaksonen/fab/internal/clipboard"
	"github.com/sakkelaaksonen/fab/internal/domain"
	"github.com/sakkelaaksonen/fab/internal/mail"
	"github.com/sakkelaaksonen/fab/internal/sanitize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockClipboard struct {
	mu     sync.Mutex
	err    error
	copied []string
}

func (m *mockClipboard) Copy(_ context.Context, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.copied = append(m.copied, text)
	return nil
}

func (m *mockClipboard) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.copied)
}

type mockConfirmer struct {
	mu      sync.Mutex
	answer  bool
	err     error
	prompts []string
	block   chan struct{} // when set, Confirm waits until closed
}

func (m *mockConfirmer) Confirm(_ context.Context, prompt string) (bool, error) {
	if m.block != nil {
		<-m.block
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	return m.answer, m.err
}

type mockNavigator struct {
	mu     sync.Mutex
	err    error
	opened []string
}

func (m *mockNavigator) Open(_ context.Context, uri string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.opened = append(m.opened, uri)
	return nil
}

func floatPtr(v float64) *float64 {
	return &v
}

func testOrder() domain.Order {
	return domain.Order{
		Number: "A1B2C3D4",
		Items: []domain.LineItem{
			{ID: "1", Name: "Bowl", Price: floatPtr(35), Quantity: 2, Image: "bowl.jpg"},
		},
		Customer: domain.CustomerInfo{
			Name:  "Jane Doe",
			Email: "jane@example.com",
			Address: domain.Address{
				Street:  "Mannerheimintie 1",
				City:    "Helsinki",
				Postal:  "00100",
				Country: "Finland",
			},
			AcceptedTOS: true,
		},
		Total:     70,
		CreatedAt: time.Now(),
	}
}

func newTestDispatcher() (*Dispatcher, *mockClipboard, *mockConfirmer, *mockNavigator) {
	clip := &mockClipboard{}
	conf := &mockConfirmer{answer: true}
	nav := &mockNavigator{}
	return New(clip, conf, nav, "orders@fab.example"), clip, conf, nav
}

func TestSubmit_ConfirmedOrderOpensMailClient(t *testing.T) {
	d, clip, _, nav := newTestDispatcher()

	res, err := d.Submit(context.Background(), testOrder())
	require.NoError(t, err)
	assert.Equal(t, domain.StageResolved, res.Stage)
	assert.True(t, res.Confirmed)
	assert.True(t, res.Copied)

	require.Len(t, nav.opened, 1)
	assert.True(t, strings.HasPrefix(nav.opened[0], "mailto:orders@fab.example?"))
	assert.Equal(t, nav.opened[0], res.MailtoURI)

	require.Len(t, clip.copied, 1)
	assert.Contains(t, clip.copied[0], "Quantity: 2")
}

func TestSubmit_DeclinedResolvesWithoutNavigation(t *testing.T) {
	d, _, conf, nav := newTestDispatcher()
	conf.answer = false

	res, err := d.Submit(context.Background(), testOrder())
	require.NoError(t, err)
	assert.Equal(t, domain.StageResolved, res.Stage)
	assert.False(t, res.Confirmed)
	assert.Empty(t, nav.opened)
	assert.Empty(t, res.MailtoURI)
}

func TestSubmit_EmptyOrderRejectedBeforeSideEffects(t *testing.T) {
	d, clip, conf, nav := newTestDispatcher()

	order := testOrder()
	order.Items = nil

	_, err := d.Submit(context.Background(), order)
	var verr *mail.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Zero(t, clip.calls())
	assert.Empty(t, conf.prompts)
	assert.Empty(t, nav.opened)
}

func TestSubmit_SanitizationErrorRejectedBeforeSideEffects(t *testing.T) {
	d, clip, _, nav := newTestDispatcher()

	order := testOrder()
	order.Customer.Email = "not-an-email"

	_, err := d.Submit(context.Background(), order)
	var serr *sanitize.Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "email", serr.Field)
	assert.Zero(t, clip.calls())
	assert.Empty(t, nav.opened)
}

func TestSubmit_ClipboardFailureDegradesPrompt(t *testing.T) {
	d, clip, conf, nav := newTestDispatcher()
	clip.err = &clipboard.Error{Err: fmt.Errorf("no clipboard")}

	res, err := d.Submit(context.Background(), testOrder())
	require.NoError(t, err)
	assert.False(t, res.Copied)
	assert.True(t, res.Confirmed)
	require.Len(t, nav.opened, 1)

	require.Len(t, conf.prompts, 1)
	assert.Contains(t, conf.prompts[0], "Could not copy")
	assert.NotContains(t, conf.prompts[0], "has been copied")
}

func TestSubmit_SanitizesBeforeFormatting(t *testing.T) {
	d, clip, _, nav := newTestDispatcher()

	order := testOrder()
	order.Customer.Name = "<script>John</script> Doe"

	res, err := d.Submit(context.Background(), order)
	require.NoError(t, err)
	assert.NotContains(t, clip.copied[0], "<script>")
	assert.Contains(t, clip.copied[0], "John Doe")
	assert.NotContains(t, res.MailtoURI, "%3Cscript%3E")
	require.Len(t, nav.opened, 1)
}

func TestSubmit_NavigatorErrorRejects(t *testing.T) {
	d, _, _, nav := newTestDispatcher()
	nav.err = fmt.Errorf("no opener")

	_, err := d.Submit(context.Background(), testOrder())
	require.ErrorContains(t, err, "open mail client")
}

func TestSubmit_ConfirmerErrorRejects(t *testing.T) {
	d, _, conf, nav := newTestDispatcher()
	conf.err = fmt.Errorf("stdin closed")

	_, err := d.Submit(context.Background(), testOrder())
	require.ErrorContains(t, err, "confirmation prompt failed")
	assert.Empty(t, nav.opened)
}

func TestSubmit_ConcurrentAttemptsCollapse(t *testing.T) {
	d, clip, conf, _ := newTestDispatcher()
	conf.block = make(chan struct{})

	var wg sync.WaitGroup
	results := make([]*Result, 2)
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = d.Submit(context.Background(), testOrder())
		}(i)
	}

	// let the first attempt get in flight and the second join it, then
	// release the blocked confirmation prompt
	require.Eventually(t, func() bool {
		return clip.calls() == 1
	}, time.Second, 10*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	close(conf.block)
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	assert.Equal(t, 1, clip.calls(), "only one pipeline ran")
	assert.Same(t, results[0], results[1])
}
