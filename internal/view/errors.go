package view

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// ReloadPage is shown when a page could not be loaded. It offers a retry of
// the same URL.
func ReloadPage(retry string) cmp.Node {
	if retry == "" {
		retry = "/dashboard"
	}
	return card("Gagal Memuat",
		g.P(cmp.Text("Terjadi kesalahan saat memuat data. Silakan coba lagi.")),
		g.A(g.Class("btn btn-primary"), g.Href(retry), cmp.Text("Muat Ulang")),
	)
}

// NotFoundPage is the 404 body.
func NotFoundPage() cmp.Node {
	return card("Halaman Tidak Ditemukan",
		g.P(cmp.Text("Halaman yang Anda cari tidak ada.")),
		g.A(g.Class("btn"), g.Href("/dashboard"), cmp.Text("Ke Dashboard")),
	)
}

// LoadingPage is rendered while a session is still being restored.
func LoadingPage() cmp.Node {
	return g.Div(
		g.Class("loading"), g.Role("status"),
		g.Div(g.Class("spinner")),
		g.P(cmp.Text("Memuat...")),
	)
}
