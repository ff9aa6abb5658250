package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/sakkelaaksonen/fab/internal/cart"
	"github.com/sakkelaaksonen/fab/internal/catalog"
	"github.com/sakkelaaksonen/fab/internal/clipboard"
	"github.com/sakkelaaksonen/fab/internal/dispatch"
	"github.com/sakkelaaksonen/fab/internal/render"
	"github.com/sakkelaaksonen/fab/internal/store"
)

func main() {
	// optional .env for local overrides
	_ = godotenv.Load()

	recipient := getEnv("FAB_ORDER_EMAIL", "orders@fab.example")

	ctx := context.Background()
	st, cleanup := buildStore(ctx, getEnv("FAB_STORE", "file"))
	defer cleanup()

	stdin := bufio.NewReader(os.Stdin)

	bridge := clipboard.NewBridge(clipboard.NewCommandWriter(), clipboard.NewOSC52Writer(os.Stdout))
	dispatcher := dispatch.New(bridge, &stdinConfirmer{in: stdin}, newNavigator(), recipient)
	panel := render.NewPanel(os.Stdout)

	c := cart.New(st, panel, dispatcher)
	c.Restore(ctx)
	gate := cart.NewGate()

	fmt.Println("fab storefront — type 'help' for commands")
	printCatalog()

	for {
		fmt.Print("> ")
		line, err := stdin.ReadString('\n')
		if err != nil {
			fmt.Println()
			return
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "list":
			printCatalog()
		case "add":
			if len(fields) < 2 {
				fmt.Println("usage: add <product-id>")
				continue
			}
			product, ok := catalog.Find(fields[1])
			if !ok {
				fmt.Printf("no such product: %s\n", fields[1])
				continue
			}
			c.AddItem(ctx, product)
		case "rm":
			if len(fields) < 2 {
				fmt.Println("usage: rm <product-id>")
				continue
			}
			c.RemoveItem(ctx, fields[1])
		case "qty":
			if len(fields) < 3 {
				fmt.Println("usage: qty <product-id> <delta>")
				continue
			}
			delta, err := strconv.Atoi(fields[2])
			if err != nil {
				fmt.Printf("not a number: %s\n", fields[2])
				continue
			}
			current, ok := currentQuantity(c, fields[1])
			if !ok {
				fmt.Printf("not in cart: %s\n", fields[1])
				continue
			}
			c.UpdateQuantity(ctx, fields[1], current, delta)
		case "cart":
			panel.Render(c.State())
		case "clear":
			c.Clear(ctx)
		case "checkout":
			runCheckout(ctx, c, gate, stdin)
		case "help":
			printHelp()
		case "quit", "exit":
			return
		default:
			fmt.Printf("unknown command: %s\n", fields[0])
		}
	}
}

func runCheckout(ctx context.Context, c *cart.Cart, gate *cart.Gate, stdin *bufio.Reader) {
	if c.Count() == 0 {
		fmt.Println("Your cart is empty.")
		return
	}

	prompts := []struct {
		field, label string
	}{
		{cart.FieldName, "Name"},
		{cart.FieldEmail, "Email"},
		{cart.FieldStreet, "Street"},
		{cart.FieldCity, "City"},
		{cart.FieldPostal, "Postal code"},
		{cart.FieldCountry, "Country"},
	}
	for _, p := range prompts {
		fmt.Printf("%s: ", p.label)
		line, err := stdin.ReadString('\n')
		if err != nil {
			return
		}
		gate.SetField(p.field, strings.TrimSpace(line))
		if gate.FieldStatus(p.field) == cart.FieldInvalid {
			fmt.Printf("  (%s looks invalid)\n", p.label)
		}
	}

	fmt.Print("Accept the terms of service? (y/n): ")
	line, err := stdin.ReadString('\n')
	if err != nil {
		return
	}
	gate.SetAcceptedTOS(isYes(line))

	if err := gate.BeginSubmit(c.Count()); err != nil {
		fmt.Printf("Cannot check out: %v\n", err)
		return
	}
	defer gate.EndSubmit()

	fmt.Println("Submitting order...")
	result, err := c.Checkout(ctx, gate.Customer())
	if err != nil {
		fmt.Printf("Checkout failed: %v\nPlease retry or contact us directly.\n", err)
		return
	}

	gate.Reset()
	if result.Confirmed {
		fmt.Println("Thank you! Your email app should open with the order; just press send.")
	} else {
		fmt.Println("Order not sent. The order text is on your clipboard if you want to email it yourself.")
	}
}

func currentQuantity(c *cart.Cart, id string) (int, bool) {
	for _, item := range c.Items() {
		if item.ID == id {
			return item.Quantity, true
		}
	}
	return 0, false
}

func printCatalog() {
	products, err := catalog.Products()
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	fmt.Println("Products:")
	for _, p := range products {
		price := "N/A"
		if p.Price != nil {
			price = fmt.Sprintf("€%.2f", *p.Price)
		}
		fmt.Printf("  %-12s %s (%s)\n", p.ID, p.Name, price)
	}
}

func printHelp() {
	fmt.Println(`commands:
  list              show the catalog
  add <id>          add one unit to the cart
  rm <id>           remove an item
  qty <id> <delta>  change an item's quantity
  cart              show the cart panel
  clear             empty the cart
  checkout          start checkout
  quit              leave`)
}

func buildStore(ctx context.Context, backend string) (store.Store, func()) {
	switch backend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       0,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Fatal("Redis connection failed:", err)
		}
		return store.NewRedisStore(client), func() { client.Close() }
	case "memory":
		return store.NewMemoryStore(), func() {}
	default:
		fs := store.NewFileStore(getEnv("FAB_CART_FILE", ".fab-cart.json"))
		if err := fs.Init(); err != nil {
			log.Fatalf("Failed to prepare cart file: %v", err)
		}
		return fs, func() {}
	}
}

// stdinConfirmer asks the yes/no question on the terminal.
type stdinConfirmer struct {
	in *bufio.Reader
}

func (s *stdinConfirmer) Confirm(_ context.Context, prompt string) (bool, error) {
	fmt.Printf("%s (y/n): ", prompt)
	line, err := s.in.ReadString('\n')
	if err != nil {
		return false, err
	}
	return isYes(line), nil
}

// openerNavigator hands the mailto URI to the system opener, or prints it
// when no opener exists.
type openerNavigator struct {
	path string
}

func newNavigator() *openerNavigator {
	for _, candidate := range []string{"xdg-open", "open"} {
		if path, err := exec.LookPath(candidate); err == nil {
			return &openerNavigator{path: path}
		}
	}
	return &openerNavigator{}
}

func (n *openerNavigator) Open(ctx context.Context, uri string) error {
	if n.path == "" {
		fmt.Printf("Open this link to send the order:\n%s\n", uri)
		return nil
	}
	return exec.CommandContext(ctx, n.path, uri).Run()
}

func isYes(line string) bool {
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
