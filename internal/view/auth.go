package view

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// LoginData pre-fills the login form after a failed attempt.
type LoginData struct {
	Email string
}

// RegisterData pre-fills the registration form.
type RegisterData struct {
	Email string
	Name  string
}

// ForgotPasswordData pre-fills the password reset form.
type ForgotPasswordData struct {
	Email string
}

func authCard(title, subtitle string, form cmp.Node, links ...cmp.Node) cmp.Node {
	return g.Div(
		g.Class("auth"),
		g.H1(cmp.Text(appName)),
		g.Div(
			g.Class("card auth-card"),
			g.H2(cmp.Text(title)),
			g.P(g.Class("muted"), cmp.Text(subtitle)),
			form,
			g.Div(g.Class("auth-links"), cmp.Group(links)),
		),
	)
}

// LoginPage is the public sign-in form.
func LoginPage(d LoginData) cmp.Node {
	return authCard("Masuk", "Pantau kesehatan Anda setiap hari.",
		g.Form(
			g.Method("post"), g.Action("/login"),
			field("Email", "email", "email", d.Email, g.Required(), g.AutoComplete("email")),
			field("Password", "password", "password", "", g.Required(), g.AutoComplete("current-password")),
			submit("Masuk"),
		),
		g.A(g.Href("/forgot-password"), cmp.Text("Lupa password?")),
		g.A(g.Href("/register"), cmp.Text("Belum punya akun? Daftar")),
	)
}

// RegisterPage is the public sign-up form.
func RegisterPage(d RegisterData) cmp.Node {
	return authCard("Daftar", "Buat akun untuk mulai mencatat kesehatan Anda.",
		g.Form(
			g.Method("post"), g.Action("/register"),
			field("Nama", "name", "text", d.Name, g.Required()),
			field("Email", "email", "email", d.Email, g.Required(), g.AutoComplete("email")),
			field("Password", "password", "password", "", g.Required(), g.MinLength("6"), g.AutoComplete("new-password")),
			field("Konfirmasi Password", "password_confirm", "password", "", g.Required()),
			submit("Daftar"),
		),
		g.A(g.Href("/login"), cmp.Text("Sudah punya akun? Masuk")),
	)
}

// ForgotPasswordPage sets a new password for an email address.
func ForgotPasswordPage(d ForgotPasswordData) cmp.Node {
	return authCard("Reset Password", "Masukkan email dan password baru Anda.",
		g.Form(
			g.Method("post"), g.Action("/forgot-password"),
			field("Email", "email", "email", d.Email, g.Required()),
			field("Password Baru", "new_password", "password", "", g.Required(), g.MinLength("6")),
			field("Konfirmasi Password", "password_confirm", "password", "", g.Required()),
			submit("Simpan Password"),
		),
		g.A(g.Href("/login"), cmp.Text("Kembali ke halaman masuk")),
	)
}
