package softdelete

import (
	"fmt"
)

// Wire labels for the two modes, as the papelera UI shows them.
const (
	ModoBajaLogica     = "baja_logica"
	ModoBorradoFisico  = "borrado_fisico"
	DefaultSampleLimit = 5
)

// ResumenTipo is one (type, mode) group of a plan summary.
type ResumenTipo struct {
	Tipo     string   `json:"tipo"`
	Etiqueta string   `json:"etiqueta"`
	Modo     string   `json:"modo"`
	Cantidad int      `json:"cantidad"`
	Ejemplos []string `json:"ejemplos"`
}

// Resumen is the UI-friendly rendering of a plan.
type Resumen struct {
	Operacion Operation     `json:"operacion"`
	Total     int           `json:"total"`
	PorTipo   []ResumenTipo `json:"por_tipo"`
}

// Resumir groups the plan's nodes by (type, mode), counting each group and
// sampling up to sampleLimit examples rendered "<instancia> (ID <pk>)".
func Resumir(reg *Registry, plan *Plan, sampleLimit int) Resumen {
	if sampleLimit <= 0 {
		sampleLimit = DefaultSampleLimit
	}
	resumen := Resumen{Operacion: plan.Operation}

	indice := make(map[string]int) // "<tipo>|<modo>" -> posicion en PorTipo
	plan.Walk(func(key NodeKey, node *Node) {
		modo := ModoBajaLogica
		if node.Mode == ModeHard {
			modo = ModoBorradoFisico
		}
		etiqueta := key.Tipo
		if info, ok := reg.Lookup(key.Tipo); ok {
			etiqueta = info.Etiqueta
		}

		clave := key.Tipo + "|" + modo
		pos, visto := indice[clave]
		if !visto {
			pos = len(resumen.PorTipo)
			indice[clave] = pos
			resumen.PorTipo = append(resumen.PorTipo, ResumenTipo{
				Tipo:     key.Tipo,
				Etiqueta: etiqueta,
				Modo:     modo,
			})
		}
		grupo := &resumen.PorTipo[pos]
		grupo.Cantidad++
		if len(grupo.Ejemplos) < sampleLimit {
			grupo.Ejemplos = append(grupo.Ejemplos, ejemplo(node.Instancia))
		}
		resumen.Total++
	})
	return resumen
}

func ejemplo(e Entity) string {
	descripcion := e.TypeKey()
	if s, ok := e.(fmt.Stringer); ok {
		descripcion = s.String()
	}
	return fmt.Sprintf("%s (ID %s)", descripcion, e.PK())
}
