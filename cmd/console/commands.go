package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"storefront-admin/console/internal/api"
	"storefront-admin/console/internal/pricing"
	"storefront-admin/console/internal/session/service"
)

type app struct {
	client *api.Client
	mgr    *service.Manager
}

// money formats amounts with digit grouping for table output.
var money = message.NewPrinter(language.English)

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "admin email")
	remember := fs.Bool("remember", false, "keep the session across restarts")
	fs.Parse(args)
	if *email == "" {
		return errors.New("-email is required")
	}

	fmt.Fprint(os.Stderr, "password: ")
	reader := bufio.NewReader(os.Stdin)
	password, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	password = strings.TrimRight(password, "\r\n")

	sess, err := a.mgr.Login(ctx, *email, password, *remember)
	if err != nil {
		if errors.Is(err, api.ErrInvalidCredentials) {
			return errors.New("login failed: check your email and password")
		}
		return err
	}
	name := sess.AdminName
	if name == "" {
		name = *email
	}
	fmt.Printf("logged in as %s (session valid until %s)\n", name, sess.ExpiresAt.Local().Format("2006-01-02 15:04"))
	return nil
}

func (a *app) cmdLogout(ctx context.Context) error {
	a.mgr.Logout(ctx, "Logged out")
	return nil
}

func (a *app) cmdStatus(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	checkAPI := fs.Bool("api", false, "also confirm the token server-side")
	fs.Parse(args)

	if !a.mgr.IsAuthenticated(ctx) {
		fmt.Println("not authenticated")
		return nil
	}
	sess := a.mgr.Current(ctx)
	fmt.Printf("authenticated as %s <%s>\n", sess.AdminName, sess.AdminEmail)
	fmt.Printf("  session id: %s\n", sess.SessionID)
	fmt.Printf("  logged in:  %s\n", sess.LoginAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Printf("  expires:    %s\n", sess.ExpiresAt.Local().Format("2006-01-02 15:04:05"))
	if *checkAPI {
		if a.mgr.ValidateWithAPI(ctx) {
			fmt.Println("  server:     token accepted")
		} else {
			fmt.Println("  server:     token rejected, session cleared")
		}
	}
	return nil
}

func (a *app) cmdExtend(ctx context.Context) error {
	if !a.mgr.ExtendSession(ctx) {
		return errors.New("no valid session to extend")
	}
	sess := a.mgr.Current(ctx)
	fmt.Printf("session extended until %s\n", sess.ExpiresAt.Local().Format("2006-01-02 15:04"))
	return nil
}

func (a *app) cmdWatch(ctx context.Context) error {
	if !a.mgr.IsAuthenticated(ctx) {
		return errors.New("not authenticated")
	}
	fmt.Println("watching session; press Ctrl-C to stop")
	a.mgr.StartRevalidation(ctx)
	return nil
}

func (a *app) cmdProfile(ctx context.Context, args []string) error {
	sub, rest := subcommand(args)
	switch sub {
	case "", "show":
		p, err := a.client.GetProfile(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("name:  %s\nemail: %s\nphone: %s\n", p.Name, p.Email, p.Phone)
		return nil
	case "update":
		fs := flag.NewFlagSet("profile update", flag.ExitOnError)
		name := fs.String("name", "", "display name")
		phone := fs.String("phone", "", "contact phone")
		fs.Parse(rest)
		current, err := a.client.GetProfile(ctx)
		if err != nil {
			return err
		}
		if *name != "" {
			current.Name = *name
		}
		if *phone != "" {
			current.Phone = *phone
		}
		updated, err := a.client.UpdateProfile(ctx, current)
		if err != nil {
			return err
		}
		fmt.Printf("profile saved for %s\n", updated.Email)
		return nil
	default:
		return fmt.Errorf("unknown profile subcommand %q", sub)
	}
}

func (a *app) cmdProducts(ctx context.Context, args []string) error {
	sub, rest := subcommand(args)
	switch sub {
	case "list":
		products, err := a.client.ListProducts(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tMRP\tDISC%\tPRICE\tSTOCK")
		for _, p := range products {
			stock := "out"
			if p.InStock {
				stock = "in"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2f\t%s\t%s\n",
				p.ID, p.Name, p.Category,
				money.Sprintf("%.2f", p.OriginalPrice), p.DiscountPercent,
				money.Sprintf("%.2f", p.SellingPrice), stock)
		}
		return w.Flush()
	case "add", "update":
		fs := flag.NewFlagSet("products "+sub, flag.ExitOnError)
		id := fs.String("id", "", "product id (update only)")
		name := fs.String("name", "", "product name")
		category := fs.String("category", "", "category name")
		material := fs.String("material", "", "material name")
		grade := fs.String("grade", "", "grade name")
		original := fs.Float64("mrp", 0, "original price")
		discount := fs.Float64("discount", 0, "discount percent")
		inStock := fs.Bool("in-stock", true, "availability")
		fs.Parse(rest)
		if *name == "" || *original <= 0 {
			return errors.New("-name and a positive -mrp are required")
		}

		triple := pricing.NewTriple(*original, 0)
		if err := triple.SetDiscount(*discount); err != nil {
			return err
		}
		p := &api.Product{
			Name:            *name,
			Category:        *category,
			Material:        *material,
			Grade:           *grade,
			OriginalPrice:   triple.Original,
			DiscountPercent: triple.Discount,
			SellingPrice:    triple.Selling,
			InStock:         *inStock,
		}
		if sub == "update" {
			if *id == "" {
				return errors.New("-id is required for update")
			}
			updated, err := a.client.UpdateProduct(ctx, *id, p)
			if err != nil {
				return err
			}
			fmt.Printf("updated %s\n", updated.ID)
			return nil
		}
		created, err := a.client.CreateProduct(ctx, p)
		if err != nil {
			return err
		}
		fmt.Printf("created %s (selling price %s)\n", created.ID, money.Sprintf("%.2f", p.SellingPrice))
		return nil
	case "delete":
		id := firstArg(rest)
		if id == "" {
			return errors.New("usage: products delete <id>")
		}
		return a.client.DeleteProduct(ctx, id)
	default:
		return fmt.Errorf("unknown products subcommand %q", sub)
	}
}

func (a *app) cmdCategories(ctx context.Context, args []string) error {
	sub, rest := subcommand(args)
	switch sub {
	case "list":
		cats, err := a.client.ListCategories(ctx)
		if err != nil {
			return err
		}
		for _, c := range cats {
			fmt.Printf("%s\t%s\n", c.ID, c.Name)
		}
		return nil
	case "add":
		name := firstArg(rest)
		if name == "" {
			return errors.New("usage: categories add <name>")
		}
		created, err := a.client.CreateCategory(ctx, &api.Category{Name: name})
		if err != nil {
			return err
		}
		fmt.Printf("created %s\n", created.ID)
		return nil
	case "delete":
		id := firstArg(rest)
		if id == "" {
			return errors.New("usage: categories delete <id>")
		}
		return a.client.DeleteCategory(ctx, id)
	default:
		return fmt.Errorf("unknown categories subcommand %q", sub)
	}
}

func (a *app) cmdMaterials(ctx context.Context, args []string) error {
	sub, rest := subcommand(args)
	switch sub {
	case "list":
		items, err := a.client.ListMaterials(ctx)
		if err != nil {
			return err
		}
		for _, m := range items {
			fmt.Printf("%s\t%s\n", m.ID, m.Name)
		}
		return nil
	case "add":
		name := firstArg(rest)
		if name == "" {
			return errors.New("usage: materials add <name>")
		}
		created, err := a.client.CreateMaterial(ctx, &api.Material{Name: name})
		if err != nil {
			return err
		}
		fmt.Printf("created %s\n", created.ID)
		return nil
	case "delete":
		id := firstArg(rest)
		if id == "" {
			return errors.New("usage: materials delete <id>")
		}
		return a.client.DeleteMaterial(ctx, id)
	default:
		return fmt.Errorf("unknown materials subcommand %q", sub)
	}
}

func (a *app) cmdGrades(ctx context.Context, args []string) error {
	sub, rest := subcommand(args)
	switch sub {
	case "list":
		items, err := a.client.ListGrades(ctx)
		if err != nil {
			return err
		}
		for _, g := range items {
			fmt.Printf("%s\t%s\n", g.ID, g.Name)
		}
		return nil
	case "add":
		name := firstArg(rest)
		if name == "" {
			return errors.New("usage: grades add <name>")
		}
		created, err := a.client.CreateGrade(ctx, &api.Grade{Name: name})
		if err != nil {
			return err
		}
		fmt.Printf("created %s\n", created.ID)
		return nil
	case "delete":
		id := firstArg(rest)
		if id == "" {
			return errors.New("usage: grades delete <id>")
		}
		return a.client.DeleteGrade(ctx, id)
	default:
		return fmt.Errorf("unknown grades subcommand %q", sub)
	}
}

func (a *app) cmdCoupons(ctx context.Context, args []string) error {
	sub, rest := subcommand(args)
	switch sub {
	case "list":
		coupons, err := a.client.ListCoupons(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCODE\tDISC%\tMIN ORDER\tACTIVE")
		for _, c := range coupons {
			fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\t%v\n",
				c.ID, c.Code, c.DiscountPercent, money.Sprintf("%.2f", c.MinOrderValue), c.Active)
		}
		return w.Flush()
	case "add":
		fs := flag.NewFlagSet("coupons add", flag.ExitOnError)
		code := fs.String("code", "", "coupon code")
		discount := fs.Float64("discount", 0, "discount percent")
		minOrder := fs.Float64("min-order", 0, "minimum order value")
		fs.Parse(rest)
		if *code == "" {
			return errors.New("-code is required")
		}
		if *discount < 0 || *discount >= 100 {
			return pricing.ErrDiscountOutOfRange
		}
		created, err := a.client.CreateCoupon(ctx, &api.Coupon{
			Code:            strings.ToUpper(*code),
			DiscountPercent: *discount,
			MinOrderValue:   *minOrder,
			Active:          true,
		})
		if err != nil {
			return err
		}
		fmt.Printf("created %s\n", created.ID)
		return nil
	case "update":
		fs := flag.NewFlagSet("coupons update", flag.ExitOnError)
		id := fs.String("id", "", "coupon id")
		discount := fs.Float64("discount", 0, "discount percent")
		minOrder := fs.Float64("min-order", 0, "minimum order value")
		active := fs.Bool("active", true, "whether the coupon is redeemable")
		fs.Parse(rest)
		if *id == "" {
			return errors.New("-id is required")
		}
		if *discount < 0 || *discount >= 100 {
			return pricing.ErrDiscountOutOfRange
		}
		existing, err := a.client.ListCoupons(ctx)
		if err != nil {
			return err
		}
		var target *api.Coupon
		for i := range existing {
			if existing[i].ID == *id {
				target = &existing[i]
				break
			}
		}
		if target == nil {
			return fmt.Errorf("no coupon with id %s", *id)
		}
		target.DiscountPercent = *discount
		target.MinOrderValue = *minOrder
		target.Active = *active
		updated, err := a.client.UpdateCoupon(ctx, *id, target)
		if err != nil {
			return err
		}
		fmt.Printf("updated %s\n", updated.ID)
		return nil
	case "delete":
		id := firstArg(rest)
		if id == "" {
			return errors.New("usage: coupons delete <id>")
		}
		return a.client.DeleteCoupon(ctx, id)
	default:
		return fmt.Errorf("unknown coupons subcommand %q", sub)
	}
}

func (a *app) cmdOrders(ctx context.Context, args []string) error {
	sub, rest := subcommand(args)
	switch sub {
	case "list":
		orders, err := a.client.ListOrders(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCUSTOMER\tTOTAL\tSTATUS\tPLACED")
		for _, o := range orders {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				o.ID, o.CustomerName, money.Sprintf("%.2f", o.Total), o.Status,
				o.CreatedAt.Local().Format("2006-01-02"))
		}
		return w.Flush()
	case "status":
		if len(rest) != 2 {
			return errors.New("usage: orders status <id> <status>")
		}
		updated, err := a.client.UpdateOrderStatus(ctx, rest[0], rest[1])
		if err != nil {
			return err
		}
		fmt.Printf("order %s is now %s\n", updated.ID, updated.Status)
		return nil
	default:
		return fmt.Errorf("unknown orders subcommand %q", sub)
	}
}

// cmdPrice derives whichever member of the triple was left out, using the
// same propagation rule the product forms use.
func cmdPrice(args []string) error {
	fs := flag.NewFlagSet("price", flag.ExitOnError)
	original := fs.String("mrp", "", "original price")
	discount := fs.String("discount", "", "discount percent")
	selling := fs.String("selling", "", "selling price")
	fs.Parse(args)

	switch {
	case *original != "" && *discount != "":
		out := pricing.SellingPriceField(*original, *discount)
		if out == "" {
			return errors.New("invalid numeric input")
		}
		fmt.Printf("selling price: %s\n", out)
	case *original != "" && *selling != "":
		out := pricing.DiscountPercentField(*original, *selling)
		if out == "" {
			return errors.New("invalid numeric input")
		}
		fmt.Printf("discount: %s%%\n", out)
	default:
		return errors.New("provide -mrp with either -discount or -selling")
	}
	return nil
}

func subcommand(args []string) (string, []string) {
	if len(args) == 0 {
		return "", nil
	}
	return args[0], args[1:]
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
