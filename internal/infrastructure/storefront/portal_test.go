package storefront_test

import (
	"fmt"
	"html"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"github.com/myselfshravan/SponsorCatcher/internal/config"
	"github.com/myselfshravan/SponsorCatcher/internal/infrastructure/storefront"
)

const (
	portalEmail    = "member@example.com"
	portalPassword = "hunter2"
	pageSize       = 2
)

type fakeProduct struct {
	id    string
	title string
	price string
}

// fakePortal mimics the members portal closely enough to exercise the
// session: postback forms, viewstate round-trips, cookie auth, paged
// catalog, cart with sold-out warnings and a payment page.
type fakePortal struct {
	t   *testing.T
	srv *httptest.Server

	products []fakeProduct
	soldOut  map[string]bool
	search   string
	visible  int
	cart     []string

	loginPosts int
	addPosts   int
	submitted  url.Values
}

func newFakePortal(t *testing.T) *fakePortal {
	t.Helper()

	p := &fakePortal{
		t: t,
		products: []fakeProduct{
			{id: "gold", title: "Gold Sponsorship", price: "$5,000.00"},
			{id: "silver", title: "Silver Sponsorship", price: "$2,500.00"},
			{id: "bronze", title: "Bronze Sponsorship", price: "$1,000.00"},
			{id: "copper", title: "Copper Sponsorship", price: "$500.00"},
			{id: "iron", title: "Iron Sponsorship", price: "$250.00"},
		},
		soldOut: map[string]bool{},
		visible: pageSize,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/account/login.aspx", p.handleLogin)
	mux.HandleFunc("/members/home.aspx", p.handleHome)
	mux.HandleFunc("/sponsorships/become-a-sponsor", p.handleCatalog)
	mux.HandleFunc("/cart.aspx", p.handleCart)
	mux.HandleFunc("/checkout.aspx", p.handleCheckout)
	mux.HandleFunc("/confirmation.aspx", p.handleConfirmation)

	p.srv = httptest.NewServer(mux)
	t.Cleanup(p.srv.Close)

	return p
}

func (p *fakePortal) session() *storefront.Session {
	p.t.Helper()

	session, err := storefront.NewSession(config.Storefront{
		BaseURL:     p.srv.URL,
		Email:       portalEmail,
		Password:    portalPassword,
		HTTPTimeout: 5 * time.Second,
	})
	require.NoError(p.t, err)

	return session
}

func badCredentials(p *fakePortal) config.Storefront {
	return config.Storefront{
		BaseURL:     p.srv.URL,
		Email:       portalEmail,
		Password:    "wrong",
		HTTPTimeout: 5 * time.Second,
	}
}

func (p *fakePortal) authed(r *http.Request) bool {
	cookie, err := r.Cookie("ASP.NET_SessionId")

	return err == nil && cookie.Value == "fixture-session"
}

func (p *fakePortal) requireAuth(w http.ResponseWriter, r *http.Request) bool {
	if p.authed(r) {
		return true
	}

	http.Redirect(w, r, "/account/login.aspx", http.StatusFound)

	return false
}

// checkPostBack runs inside the server goroutine, so it reports through
// Errorf instead of require.
func (p *fakePortal) checkPostBack(r *http.Request) {
	if err := r.ParseForm(); err != nil {
		p.t.Errorf("portal: parse form: %v", err)

		return
	}

	if r.PostFormValue("__VIEWSTATE") == "" {
		p.t.Error("portal: postback arrived without viewstate")
	}
}

func (p *fakePortal) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		p.renderLogin(w, "")

		return
	}

	p.checkPostBack(r)
	p.loginPosts++

	email := r.PostFormValue("ctl00$main_content$Login$txtLoginUserName")
	password := r.PostFormValue("ctl00$main_content$Login$ctlLoginPassword$txtPassword")

	if email != portalEmail || password != portalPassword {
		p.renderLogin(w, "Invalid email or password.")

		return
	}

	http.SetCookie(w, &http.Cookie{Name: "ASP.NET_SessionId", Value: "fixture-session", Path: "/"})
	http.Redirect(w, r, "/members/home.aspx", http.StatusFound)
}

func (p *fakePortal) handleHome(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprint(w, `<html><body><h2>Member Home</h2></body></html>`)
}

func (p *fakePortal) handleCatalog(w http.ResponseWriter, r *http.Request) {
	if !p.requireAuth(w, r) {
		return
	}

	if r.Method == http.MethodPost {
		p.checkPostBack(r)

		target := r.PostFormValue("__EVENTTARGET")
		switch {
		case target == "ctl00$Main$btnSearch":
			p.search = r.PostFormValue("ctl00$Main$txtSearch")
			p.visible = pageSize
		case target == "ctl00$Main$lnkLoadMore":
			p.visible += pageSize
		case strings.HasSuffix(target, "$lnkAdd"):
			p.addPosts++
			p.addToCart(target)
		}
	}

	p.renderCatalog(w)
}

func (p *fakePortal) addToCart(target string) {
	for i, product := range p.products {
		if target != fmt.Sprintf("ctl00$Main$rptProducts$ctl%02d$lnkAdd", i) {
			continue
		}

		if p.soldOut[product.id] || lo.Contains(p.cart, product.id) {
			return
		}

		p.cart = append(p.cart, product.id)

		return
	}
}

func (p *fakePortal) renderLogin(w http.ResponseWriter, summary string) {
	fmt.Fprintf(w, `<html><body>
<form method="post" action="/account/login.aspx">
<input type="hidden" name="__VIEWSTATE" value="vs-login"/>
<input type="hidden" name="__EVENTVALIDATION" value="ev-login"/>
<div id="main_content_Login_LoginValidationSummary">%s</div>
<input id="main_content_Login_txtLoginUserName" name="ctl00$main_content$Login$txtLoginUserName" type="text" value=""/>
<input id="main_content_Login_ctlLoginPassword_txtPassword" name="ctl00$main_content$Login$ctlLoginPassword$txtPassword" type="password" value=""/>
<a id="LoginButton" class="btn green" href="javascript:__doPostBack('ctl00$main_content$Login$LoginButton','')">Log In</a>
</form></body></html>`, html.EscapeString(summary))
}

func (p *fakePortal) renderCatalog(w http.ResponseWriter) {
	var b strings.Builder

	b.WriteString(`<html><body>
<form method="post" action="/sponsorships/become-a-sponsor">
<input type="hidden" name="__VIEWSTATE" value="vs-catalog"/>
<input type="hidden" name="__EVENTVALIDATION" value="ev-catalog"/>
<div class="input-group">
<input class="form-control" name="ctl00$Main$txtSearch" type="text" value="` + html.EscapeString(p.search) + `"/>
<a class="btn green" href="javascript:__doPostBack('ctl00$Main$btnSearch','')">Search</a>
</div>
<div class="products-list">`)

	matched, shown := 0, 0

	for i, product := range p.products {
		if p.search != "" && !strings.Contains(strings.ToLower(product.title), strings.ToLower(p.search)) {
			continue
		}

		matched++
		if shown >= p.visible {
			continue
		}

		shown++

		b.WriteString(p.renderCard(i, product))
	}

	b.WriteString("</div>")

	if matched > p.visible {
		b.WriteString(`<a id="ctl00_Main_lnkLoadMore" href="javascript:__doPostBack('ctl00$Main$lnkLoadMore','')">Show More</a>`)
	}

	b.WriteString("</form></body></html>")

	fmt.Fprint(w, b.String())
}

func (p *fakePortal) renderCard(index int, product fakeProduct) string {
	classes := "pricing"
	inCart := lo.Contains(p.cart, product.id)

	if inCart {
		classes += " selected"
	}

	var footer string

	switch {
	case inCart:
		footer = fmt.Sprintf(
			`<a class="btn red" href="javascript:__doPostBack('ctl00$Main$rptProducts$ctl%02d$lnkRemove','')">Remove</a>`+
				`<a class="btn green" href="/cart.aspx">Review &amp; Checkout</a>`, index)
	case p.soldOut[product.id]:
		footer = `<span class="product-sold-out">Sold Out</span>`
	default:
		footer = fmt.Sprintf(
			`<a class="btn green" href="javascript:__doPostBack('ctl00$Main$rptProducts$ctl%02d$lnkAdd','')">Add To Cart</a>`, index)
	}

	return fmt.Sprintf(`
<div class="%s" data-product-id="%s">
<div class="pricing-head"><h3>%s</h3><h4>%s</h4></div>
<div class="pricing-footer">%s</div>
</div>`, classes, product.id, html.EscapeString(product.title), product.price, footer)
}

func (p *fakePortal) handleCart(w http.ResponseWriter, r *http.Request) {
	if !p.requireAuth(w, r) {
		return
	}

	if r.Method == http.MethodPost {
		p.checkPostBack(r)

		target := r.PostFormValue("__EVENTTARGET")

		if target == "ctl00$Cart$btnCheckout" {
			http.Redirect(w, r, "/checkout.aspx", http.StatusFound)

			return
		}

		if strings.HasSuffix(target, "$lnkRemove") {
			p.removeFromCart(target)
		}
	}

	p.renderCart(w)
}

func (p *fakePortal) removeFromCart(target string) {
	for i := range p.cart {
		if target == fmt.Sprintf("ctl00$Cart$rptItems$ctl%02d$lnkRemove", i) {
			p.cart = append(p.cart[:i], p.cart[i+1:]...)

			return
		}
	}
}

func (p *fakePortal) renderCart(w http.ResponseWriter) {
	var b strings.Builder

	b.WriteString(`<html><body>
<form method="post" action="/cart.aspx">
<input type="hidden" name="__VIEWSTATE" value="vs-cart"/>
<input type="hidden" name="__EVENTVALIDATION" value="ev-cart"/>`)

	var unavailable []string

	for _, id := range p.cart {
		if p.soldOut[id] {
			unavailable = append(unavailable, p.title(id))
		}
	}

	if len(unavailable) > 0 {
		b.WriteString(`<div class="alert alert-warning"><p>The following items sold out before checkout:</p><ul>`)

		for _, name := range unavailable {
			b.WriteString("<li>" + html.EscapeString(name) + "</li>")
		}

		b.WriteString("</ul></div>")
	}

	for i, id := range p.cart {
		b.WriteString(fmt.Sprintf(`
<div class="cart-item"><span class="cart-item-name">%s</span>
<a id="ctl00_Cart_rptItems_ctl%02d_lnkRemove" class="btn red" href="javascript:__doPostBack('ctl00$Cart$rptItems$ctl%02d$lnkRemove','')">Remove</a></div>`,
			html.EscapeString(p.title(id)), i, i))
	}

	if len(p.cart) > 0 {
		b.WriteString(`<a class="btn-cart-checkout" href="javascript:__doPostBack('ctl00$Cart$btnCheckout','')">Checkout</a>`)
	}

	b.WriteString("</form></body></html>")

	fmt.Fprint(w, b.String())
}

func (p *fakePortal) handleCheckout(w http.ResponseWriter, r *http.Request) {
	if !p.requireAuth(w, r) {
		return
	}

	if r.Method == http.MethodPost {
		p.checkPostBack(r)

		if r.PostFormValue("__EVENTTARGET") == "ctl00$Checkout$lnkSubmit" {
			if r.PostFormValue("ctl00$Checkout$txtCCNumber") == "" {
				p.renderCheckout(w, "Card number is required.")

				return
			}

			p.submitted = r.PostForm
			p.cart = nil

			http.Redirect(w, r, "/confirmation.aspx", http.StatusFound)

			return
		}
	}

	p.renderCheckout(w, "")
}

func (p *fakePortal) renderCheckout(w http.ResponseWriter, alert string) {
	var b strings.Builder

	b.WriteString(`<html><body>
<form method="post" action="/checkout.aspx">
<input type="hidden" name="__VIEWSTATE" value="vs-checkout"/>
<input type="hidden" name="__EVENTVALIDATION" value="ev-checkout"/>`)

	if alert != "" {
		b.WriteString(`<div class="alert alert-danger">` + html.EscapeString(alert) + `</div>`)
	}

	total := "$0.00"

	if len(p.cart) > 0 {
		total = p.price(p.cart[0])
	}

	b.WriteString(`<span id="ctl00_Checkout_lblTotal">` + total + `</span>
<input id="ctl00_Checkout_txtName" name="ctl00$Checkout$txtName" type="text" value=""/>
<input id="ctl00_Checkout_txtCCNumber" name="ctl00$Checkout$txtCCNumber" type="text" value=""/>
<input id="ctl00_Checkout_txtCVV" name="ctl00$Checkout$txtCVV" type="text" value=""/>
<input id="ctl00_Checkout_txtCCZip" name="ctl00$Checkout$txtCCZip" type="text" value=""/>
<input id="ctl00_Checkout_txtCCEmail" name="ctl00$Checkout$txtCCEmail" type="text" value=""/>
<select id="ctl00_Checkout_ddlCCExpireMonth" name="ctl00$Checkout$ddlCCExpireMonth">`)

	for month := 1; month <= 12; month++ {
		fmt.Fprintf(&b, `<option value="%d">%d</option>`, month, month)
	}

	b.WriteString(`</select>
<select id="ctl00_Checkout_ddlCCExpireYear" name="ctl00$Checkout$ddlCCExpireYear">`)

	for year := 2026; year <= 2033; year++ {
		fmt.Fprintf(&b, `<option value="%d">%d</option>`, year, year)
	}

	b.WriteString(`</select>
<input type="radio" id="rdoCredit" name="ctl00$Checkout$payMethod" value="credit"/>
<a class="btn green" href="javascript:__doPostBack('ctl00$Checkout$lnkSubmit','')">Submit Your Order</a>
</form></body></html>`)

	fmt.Fprint(w, b.String())
}

func (p *fakePortal) handleConfirmation(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprint(w, `<html><body><h2>Thank you for your order</h2></body></html>`)
}

func (p *fakePortal) title(id string) string {
	for _, product := range p.products {
		if product.id == id {
			return product.title
		}
	}

	return id
}

func (p *fakePortal) price(id string) string {
	for _, product := range p.products {
		if product.id == id {
			return product.price
		}
	}

	return "$0.00"
}
