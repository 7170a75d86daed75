package cli

import (
	"encoding/json"
	"fmt"
	"io"

	historymodels "letscheck-client/internal/features/history/models"
	"letscheck-client/internal/features/verification/models"
)

const (
	colorGreen  = "\x1b[32m"
	colorRed    = "\x1b[31m"
	colorYellow = "\x1b[33m"
	colorGray   = "\x1b[90m"
	colorReset  = "\x1b[0m"
)

// VerdictView is the visual configuration of one result code.
type VerdictView struct {
	Title string
	Badge string
	Icon  string
	Color string
}

var verdictViews = map[models.ResultCode]VerdictView{
	models.ResultAuthentic: {
		Title: "Document Authentique",
		Badge: "AUTHENTIQUE",
		Icon:  "✔",
		Color: colorGreen,
	},
	models.ResultInvalidSignature: {
		Title: "Signature Invalide",
		Badge: "INVALIDE",
		Icon:  "✖",
		Color: colorRed,
	},
	models.ResultNotFound: {
		Title: "Document Non Trouvé",
		Badge: "NON TROUVÉ",
		Icon:  "?",
		Color: colorYellow,
	},
	models.ResultRevoked: {
		Title: "Document Révoqué",
		Badge: "RÉVOQUÉ",
		Icon:  "⊘",
		Color: colorGray,
	},
}

// ViewFor maps a result code to its view. Unknown codes fall back to the
// invalid-signature presentation: an unrecognized verdict must never
// render as authentic.
func ViewFor(code models.ResultCode) VerdictView {
	if view, ok := verdictViews[code]; ok {
		return view
	}
	return verdictViews[models.ResultInvalidSignature]
}

// RenderResult writes the verdict card. The report hint is always present,
// keyed by the document hash; the certificate link only on an authentic
// result that carries one.
func RenderResult(w io.Writer, result *models.VerificationResult) {
	view := ViewFor(result.Result)

	fmt.Fprintf(w, "\n%s%s %s%s  [%s]\n\n", view.Color, view.Icon, view.Title, colorReset, view.Badge)
	fmt.Fprintf(w, "  Hash : %s\n", result.DocumentHash)

	if result.Document != nil {
		fmt.Fprintf(w, "  Institution : %s\n", result.Document.Institution.Name)
		fmt.Fprintf(w, "  Date de signature : %s\n", result.Document.SignedAt.Local().Format("02/01/2006 15:04:05"))
	}

	if result.Result == models.ResultAuthentic && result.CertificateURL != "" {
		fmt.Fprintf(w, "  Télécharger le certificat : %s\n", result.CertificateURL)
	}

	fmt.Fprintf(w, "\n  Signaler un problème : letscheck report %s\n", result.DocumentHash)
}

// RenderResultJSON writes the raw normalized result to w.
func RenderResultJSON(w io.Writer, result *models.VerificationResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// RenderHistory writes the verification history, newest first.
func RenderHistory(w io.Writer, entries []historymodels.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "Aucune vérification enregistrée.")
		return
	}

	fmt.Fprintln(w, "Historique de Vérification :")
	fmt.Fprintf(w, "%-64s %-18s %s\n", "HASH", "RÉSULTAT", "DATE")
	for _, entry := range entries {
		fmt.Fprintf(w, "%-64s %-18s %s\n", entry.Hash, entry.Result, entry.Date.Local().Format("02/01/2006 15:04:05"))
	}
}
