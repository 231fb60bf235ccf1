package tui

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"user-manager-form/internal/domain/user"
)

// Message keys double as the English text.
const (
	msgTitle      = "User Management"
	msgCreate     = "Add User"
	msgUpdate     = "Update User"
	msgEdit       = "Edit"
	msgDelete     = "Delete"
	msgEmptyList  = "No users yet"
	msgFailed     = "Operation failed, see the log for details"
	msgHelpForm   = "tab/shift+tab: move • enter: submit • ctrl+c: exit"
	msgHelpList   = "↑/↓: select • e: edit • d: delete • tab: back to form"
	msgFirstNames = "First names"
	msgLastNames  = "Last names"
	msgTaxID      = "Tax ID"
	msgCheckDigit = "Check digit"
	msgBirthDate  = "Birth date (YYYY-MM-DD)"
	msgEmail      = "Email"
	msgPassword   = "Password"
)

var fieldLabels = map[user.Field]string{
	user.FirstNames: msgFirstNames,
	user.LastNames:  msgLastNames,
	user.TaxID:      msgTaxID,
	user.CheckDigit: msgCheckDigit,
	user.BirthDate:  msgBirthDate,
	user.Email:      msgEmail,
	user.Password:   msgPassword,
}

var spanish = map[string]string{
	msgTitle:      "Gestión de Usuarios",
	msgCreate:     "Agregar Usuario",
	msgUpdate:     "Actualizar Usuario",
	msgEdit:       "Editar",
	msgDelete:     "Eliminar",
	msgEmptyList:  "Sin usuarios",
	msgFailed:     "La operación falló, revise el log",
	msgHelpForm:   "tab/shift+tab: mover • enter: enviar • ctrl+c: salir",
	msgHelpList:   "↑/↓: seleccionar • e: editar • d: eliminar • tab: volver al formulario",
	msgFirstNames: "Nombres",
	msgLastNames:  "Apellidos",
	msgTaxID:      "RUT",
	msgCheckDigit: "DV",
	msgBirthDate:  "Fecha de Nacimiento",
	msgEmail:      "Correo Electrónico",
	msgPassword:   "Contraseña",
}

var supported = []language.Tag{language.Spanish, language.English}

func newCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, es := range spanish {
		_ = b.SetString(language.English, key, key)
		_ = b.SetString(language.Spanish, key, es)
	}
	return b
}

// NewPrinter picks the closest supported language for lang ("es", "en-US",
// "es-CL", ...). Unknown languages fall back to Spanish, the form's default.
func NewPrinter(lang string) *message.Printer {
	tag := language.Spanish
	if t, err := language.Parse(lang); err == nil {
		_, idx, conf := language.NewMatcher(supported).Match(t)
		if conf != language.No {
			tag = supported[idx]
		}
	}

	return message.NewPrinter(tag, message.Catalog(newCatalog()))
}
