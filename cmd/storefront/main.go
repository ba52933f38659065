// Package main запускает консольный клиент витрины.
//
// Использование:
//
//	storefront [flags] products [term]
//	storefront [flags] snapshot [-dump]
//	storefront [flags] add <productID> <qty> [size] [color]
//	storefront [flags] promo <code>
//	storefront [flags] checkout <addressID|default> <card|cash|paypal>
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"

	"github.com/mmeshcher/storefront-client/internal/auth"
	"github.com/mmeshcher/storefront-client/internal/config"
	"github.com/mmeshcher/storefront-client/internal/logger"
	"github.com/mmeshcher/storefront-client/internal/model"
	"github.com/mmeshcher/storefront-client/internal/service"
	"github.com/mmeshcher/storefront-client/internal/store"
	"github.com/mmeshcher/storefront-client/internal/transport"
)

const cliIdentity = "cli"

var errUsage = errors.New("usage: storefront [flags] products|snapshot|add|promo|checkout ...")

type app struct {
	cfg      *config.Config
	out      io.Writer
	products *service.ProductService
	store    *store.Store
}

type printNotifier struct {
	out io.Writer
}

func (n printNotifier) Success(message string) {
	fmt.Fprintln(n.out, "ok:", message)
}

func (n printNotifier) Error(message string) {
	fmt.Fprintln(n.out, "error:", message)
}

func main() {
	cfg, err := config.Parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New("storefront", cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := newApp(cfg, log, os.Stdout)
	if err := a.run(ctx, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(cfg *config.Config, log *zap.Logger, out io.Writer) *app {
	creds := auth.NewCredentials()
	client := transport.NewClient(cfg.APIBaseURL,
		transport.WithTimeout(cfg.RequestTimeout),
		transport.WithTokenSource(creds),
		transport.WithLogger(log),
	)

	return &app{
		cfg:      cfg,
		out:      out,
		products: service.NewProductService(client),
		store: store.New(store.NewServices(client), creds,
			store.WithNotifier(printNotifier{out: out}),
			store.WithLogger(log),
		),
	}
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "products":
		return a.listProducts(ctx, rest)
	case "snapshot":
		return a.snapshot(ctx, rest)
	case "add":
		return a.addToCart(ctx, rest)
	case "promo":
		return a.applyPromo(ctx, rest)
	case "checkout":
		return a.checkout(ctx, rest)
	default:
		return fmt.Errorf("unknown command %q: %w", cmd, errUsage)
	}
}

func (a *app) signIn(ctx context.Context) error {
	if a.cfg.AuthToken == "" {
		return errors.New("sign in required: set AUTH_TOKEN or -k")
	}
	return a.store.HandleAuthEvent(ctx, auth.SignedIn(cliIdentity, auth.StaticToken(a.cfg.AuthToken)))
}

func (a *app) listProducts(ctx context.Context, args []string) error {
	term := ""
	if len(args) > 0 {
		term = args[0]
	}

	page, err := a.products.Search(ctx, term, 1, 20)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tSTOCK")
	for _, p := range page.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", p.ID, p.Name, p.Category, p.Price.StringFixed(2), p.Stock)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%d of %d products\n", len(page.Items), page.Total)
	return nil
}

func (a *app) snapshot(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("snapshot", flag.ContinueOnError)
	fs.SetOutput(a.out)
	dump := fs.Bool("dump", false, "dump the whole state")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.signIn(ctx); err != nil {
		return err
	}

	snap := a.store.Snapshot()
	if *dump {
		cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true, SortKeys: true}
		cfg.Fdump(a.out, snap)
		return nil
	}

	if snap.User != nil {
		fmt.Fprintf(a.out, "user:          %s %s <%s>\n", snap.User.FirstName, snap.User.LastName, snap.User.Email)
		fmt.Fprintf(a.out, "addresses:     %d\n", len(snap.User.Addresses))
	}
	fmt.Fprintf(a.out, "cart items:    %d\n", a.store.TotalItems())
	fmt.Fprintf(a.out, "cart total:    %s\n", a.store.TotalPrice().StringFixed(2))
	if snap.Promo != nil {
		fmt.Fprintf(a.out, "promo:         %s\n", snap.Promo.Code)
	}
	fmt.Fprintf(a.out, "wishlist:      %d\n", len(snap.Wishlist))
	fmt.Fprintf(a.out, "orders:        %d\n", len(snap.Orders))
	fmt.Fprintf(a.out, "returns:       %d\n", len(snap.Returns))
	fmt.Fprintf(a.out, "notifications: %d (%d unread)\n", len(snap.Notifications), a.store.UnreadCount())
	return nil
}

func (a *app) addToCart(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: add <productID> <qty> [size] [color]")
	}
	qty, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid quantity %q: %w", args[1], err)
	}

	in := model.AddToCartInput{ProductID: args[0], Quantity: qty}
	if len(args) > 2 {
		in.Size = args[2]
	}
	if len(args) > 3 {
		in.Color = args[3]
	}

	if err := a.signIn(ctx); err != nil {
		return err
	}
	if err := a.store.AddToCart(ctx, in); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "cart items: %d, total: %s\n", a.store.TotalItems(), a.store.TotalPrice().StringFixed(2))
	return nil
}

func (a *app) applyPromo(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: promo <code>")
	}

	if err := a.signIn(ctx); err != nil {
		return err
	}
	if err := a.store.ApplyPromo(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "discount: %s, total: %s\n", a.store.Discount().StringFixed(2), a.store.TotalPrice().StringFixed(2))
	return nil
}

func (a *app) checkout(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: checkout <addressID|default> <card|cash|paypal>")
	}

	if err := a.signIn(ctx); err != nil {
		return err
	}

	addressID := args[0]
	if addressID == "default" {
		addr := a.store.DefaultAddress()
		if addr == nil {
			return errors.New("no default address")
		}
		addressID = addr.ID
	}

	order, err := a.store.CreateOrder(ctx, model.CreateOrderInput{AddressID: addressID, PaymentMethod: args[1]})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "order %s: %s, total %s\n", order.ID, order.Status, order.Total.StringFixed(2))
	return nil
}
