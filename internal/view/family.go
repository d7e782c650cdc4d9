package view

import (
	"github.com/nfrund/healthtrack/internal/domain"
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"
)

var relationships = []option{
	{"parent", "Orang Tua"},
	{"child", "Anak"},
	{"spouse", "Pasangan"},
	{"sibling", "Saudara"},
	{"other", "Lainnya"},
}

func relationshipLabel(v string) string {
	for _, o := range relationships {
		if o.value == v {
			return o.label
		}
	}
	return Title(v)
}

// FamilyPage lists linked members and pending invitations.
func FamilyPage(members []domain.FamilyMember, reqs *domain.FamilyRequests) cmp.Node {
	var received, sent []domain.FamilyMember
	if reqs != nil {
		received, sent = reqs.Received, reqs.Sent
	}
	return g.Div(
		card("Undang Anggota Keluarga",
			g.Form(
				g.Class("inline"), g.Method("post"), g.Action("/family/invite"),
				field("Email", "member_email", "email", "", g.Required()),
				selectField("Hubungan", "relationship", "parent", relationships),
				submit("Undang"),
			),
		),
		card("Anggota Keluarga",
			cmp.If(len(members) == 0, empty("Belum ada anggota keluarga.")),
			g.Ul(g.Class("list"), cmp.Map(members, func(m domain.FamilyMember) cmp.Node {
				return g.Li(
					g.Strong(cmp.Text(orDash(m.MemberName))),
					g.Span(g.Class("muted"), cmp.Text(m.MemberEmail)),
					g.Span(g.Class("badge"), cmp.Text(relationshipLabel(m.Relationship))),
					cmp.If(m.CanViewHealth, g.A(g.Href("/family/"+uitoa(m.ID)+"/health"), cmp.Text("Lihat Kesehatan"))),
					g.Button(
						g.Type("button"),
						hx.Delete("/family/"+uitoa(m.ID)),
						hx.Confirm("Hapus anggota keluarga ini?"),
						hx.Target("closest li"), hx.Swap("outerHTML"),
						cmp.Text("Hapus"),
					),
				)
			})),
		),
		card("Permintaan Masuk",
			cmp.If(len(received) == 0, empty("Tidak ada permintaan.")),
			g.Ul(g.Class("list"), cmp.Map(received, func(m domain.FamilyMember) cmp.Node {
				id := uitoa(m.ID)
				return g.Li(
					g.Span(cmp.Text(orDash(m.MemberName))),
					g.Span(g.Class("badge"), cmp.Text(relationshipLabel(m.Relationship))),
					g.Form(g.Class("inline"), g.Method("post"), g.Action("/family/requests/"+id+"/approve"), submit("Terima")),
					g.Form(g.Class("inline"), g.Method("post"), g.Action("/family/requests/"+id+"/reject"),
						g.Button(g.Type("submit"), g.Class("btn"), cmp.Text("Tolak"))),
				)
			})),
		),
		card("Undangan Terkirim",
			cmp.If(len(sent) == 0, empty("Tidak ada undangan tertunda.")),
			g.Ul(g.Class("list"), cmp.Map(sent, func(m domain.FamilyMember) cmp.Node {
				return g.Li(g.Span(cmp.Text(m.MemberEmail)), g.Span(g.Class("badge"), cmp.Text(Title(m.Status))))
			})),
		),
	)
}

// FamilyHealthPage shows a linked member's latest health data.
func FamilyHealthPage(h *domain.FamilyHealth) cmp.Node {
	var latest cmp.Node = empty("Belum ada data kesehatan.")
	if h.LatestHealth != nil {
		latest = g.Dl(
			g.Dt(cmp.Text("Berat")), g.Dd(cmp.Textf("%s kg", Number(h.LatestHealth.WeightKg))),
			g.Dt(cmp.Text("Tinggi")), g.Dd(cmp.Textf("%s cm", Number(h.LatestHealth.HeightCm))),
			g.Dt(cmp.Text("BMI")), g.Dd(cmp.Textf("%s (%s)", Number(h.LatestHealth.BMI), orDash(h.BMICategory))),
			g.Dt(cmp.Text("Dicatat")), g.Dd(cmp.Text(Date(h.LatestHealth.RecordDate))),
		)
	}
	return g.Div(
		g.A(g.Href("/family"), cmp.Text("← Kembali")),
		card(h.MemberName+" ("+relationshipLabel(h.Relationship)+")", latest),
		card("Gejala Terbaru",
			cmp.If(len(h.RecentSymptoms) == 0, empty("Tidak ada gejala tercatat.")),
			g.Ul(g.Class("list"), cmp.Map(h.RecentSymptoms, symptomItem)),
		),
	)
}
