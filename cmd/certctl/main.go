package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mamadbah2/railfit/internal/domain/models"
	"github.com/mamadbah2/railfit/pkg/clients/certapi"
)

type options struct {
	server       string
	lang         string
	vendor       string
	lot          string
	itemType     string
	manufactured string
	supplied     string
	warranty     string
	out          string
	timeout      time.Duration
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("certctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.server, "server", "http://localhost:5000", "API base URL")
	fs.StringVar(&opts.lang, "lang", "", "Certificate locale, e.g. en-GB")
	fs.StringVar(&opts.vendor, "vendor", "", "Vendor name (required)")
	fs.StringVar(&opts.lot, "lot", "", "Lot number (required)")
	fs.StringVar(&opts.itemType, "type", "", "Item type (required)")
	fs.StringVar(&opts.manufactured, "manufactured", "", "Manufacture date, YYYY-MM-DD")
	fs.StringVar(&opts.supplied, "supplied", "", "Supply date, YYYY-MM-DD")
	fs.StringVar(&opts.warranty, "warranty", "", "Warranty period, e.g. \"2 years\"")
	fs.StringVar(&opts.out, "out", "", "QR image path (default <certificate>.png)")
	fs.DurationVar(&opts.timeout, "timeout", 30*time.Second, "Request timeout")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Railway fitting certificate client\n\n")
		fmt.Fprintf(stderr, "Usage:\n")
		fmt.Fprintf(stderr, "  certctl -vendor <name> -lot <lot> -type <item> [options]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	var missing []string
	for _, f := range []struct{ name, value string }{
		{"vendor", opts.vendor},
		{"lot", opts.lot},
		{"type", opts.itemType},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, "-"+f.name)
		}
	}
	if len(missing) > 0 {
		return options{}, fmt.Errorf("missing required flags: %s", strings.Join(missing, ", "))
	}

	return opts, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	client := certapi.NewClient(opts.server, opts.lang, opts.timeout)
	if _, err := client.Health(ctx); err != nil {
		return fmt.Errorf("server %s not ready: %w", opts.server, err)
	}

	cert, err := client.GeneratePDF(ctx, models.CertificateRequest{
		VendorName:      opts.vendor,
		LotNumber:       opts.lot,
		ItemType:        opts.itemType,
		ManufactureDate: opts.manufactured,
		SupplyDate:      opts.supplied,
		WarrantyPeriod:  opts.warranty,
	})
	if err != nil {
		return err
	}

	qr, err := client.GenerateQR(ctx, cert.FullURL)
	if err != nil {
		return err
	}
	data, err := certapi.PNG(qr.QRCode)
	if err != nil {
		return err
	}

	out := opts.out
	if out == "" {
		out = strings.TrimSuffix(cert.Filename, ".pdf") + ".png"
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write qr image: %w", err)
	}

	fmt.Fprintf(stdout, "Certificate: %s\n", cert.FullURL)
	fmt.Fprintf(stdout, "Document ID: %d\n", cert.Timestamp)
	fmt.Fprintf(stdout, "QR code:     %s\n", out)
	return nil
}
