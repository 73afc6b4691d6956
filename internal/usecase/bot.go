package usecase

import (
	"context"
	"strings"
	"sync"
	"unicode/utf8"

	domainErrors "github.com/thermopolio/thermopolio/internal/domain/errors"
	"github.com/thermopolio/thermopolio/internal/domain/model"
)

const (
	maxBotMessageLength = 500
	fallbackIntent      = "default"
)

type botIntent struct {
	name        string
	keywords    []string
	message     string
	suggestions []string
}

// The intent with the most keyword hits wins; ties go to the earlier entry.
var botIntents = []botIntent{
	{
		name:        "annullamento",
		keywords:    []string{"annull", "cancell", "disdire"},
		message:     "Puoi annullare un ordine finché non è completato. Il ristorante riceverà una notifica.",
		suggestions: []string{"Posso donare un ordine invece?"},
	},
	{
		name:        "donazioni",
		keywords:    []string{"don", "onlus", "beneficenza", "solidal"},
		message:     "Se non puoi ritirare un pasto puoi donarlo a una onlus: apri l'ordine e scegli Dona. La onlus riceverà subito una notifica.",
		suggestions: []string{"Quali onlus sono disponibili?"},
	},
	{
		name:        "ordini",
		keywords:    []string{"ordine", "ordinare", "ordini", "prenot"},
		message:     "Scegli un piano di abbonamento di una tavola calda, indica quantità e data di consegna e conferma l'ordine dalla sezione Ordini.",
		suggestions: []string{"Dove posso ritirare?", "Posso annullare un ordine?"},
	},
	{
		name:        "abbonamenti",
		keywords:    []string{"abbonament", "piano", "piani", "menu", "primo", "secondo", "completo"},
		message:     "Ogni tavola calda offre piani primo, secondo o completo. Trovi prezzi e descrizioni nella pagina del ristorante.",
		suggestions: []string{"Ristoranti vicino a me"},
	},
	{
		name:        "ritiro",
		keywords:    []string{"ritir", "punto", "dove", "vicino", "mappa", "qr"},
		message:     "Nella mappa trovi i punti di ritiro entro 5 km dalla tua posizione. Al ritiro mostra il QR code dell'ordine.",
		suggestions: []string{"Come ottengo il QR code?"},
	},
	{
		name:        "pagamento",
		keywords:    []string{"pag", "prezz", "cost", "carta"},
		message:     "Il prezzo è indicato in ogni piano; il pagamento avviene al ritiro presso la tavola calda.",
		suggestions: []string{"Come faccio un ordine?"},
	},
	{
		name:        "aiuto",
		keywords:    []string{"aiuto", "help", "supporto", "problema"},
		message:     "Descrivimi il problema oppure scrivi a supporto@thermopolio.it.",
		suggestions: []string{"Come faccio un ordine?", "Come funzionano le donazioni?"},
	},
	{
		name:        "saluto",
		keywords:    []string{"ciao", "buongiorno", "buonasera", "salve"},
		message:     "Ciao! Sono l'assistente di Thermopolio. Posso aiutarti con ordini, abbonamenti, ritiri e donazioni.",
		suggestions: []string{"Come faccio un ordine?", "Come funzionano le donazioni?"},
	},
}

var fallbackReply = model.BotReply{
	Intent:      fallbackIntent,
	Message:     "Non ho capito la domanda. Prova a chiedermi di ordini, abbonamenti, ritiro o donazioni.",
	Suggestions: []string{"Come faccio un ordine?", "Dove posso ritirare?", "Come funzionano le donazioni?"},
}

// BotUseCase answers support questions from a fixed table and counts interactions.
type BotUseCase struct {
	mu       sync.Mutex
	total    int64
	byIntent map[string]int64
}

// NewBotUseCase constructs BotUseCase.
func NewBotUseCase() *BotUseCase {
	return &BotUseCase{byIntent: make(map[string]int64)}
}

// Reply returns the canned answer for message.
func (u *BotUseCase) Reply(_ context.Context, message string) (model.BotReply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return model.BotReply{}, domainErrors.Invalid("message", "il messaggio è obbligatorio")
	}
	if utf8.RuneCountInString(message) > maxBotMessageLength {
		return model.BotReply{}, domainErrors.Invalid("message", "messaggio troppo lungo")
	}

	reply := match(strings.ToLower(message))
	u.mu.Lock()
	u.total++
	u.byIntent[reply.Intent]++
	u.mu.Unlock()
	return reply, nil
}

// Stats returns a snapshot of the interaction counters.
func (u *BotUseCase) Stats() model.BotStats {
	u.mu.Lock()
	defer u.mu.Unlock()

	byIntent := make(map[string]int64, len(u.byIntent))
	for k, v := range u.byIntent {
		byIntent[k] = v
	}
	return model.BotStats{Total: u.total, ByIntent: byIntent}
}

func match(message string) model.BotReply {
	words := strings.FieldsFunc(message, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'à' && r <= 'ù')
	})

	best, bestHits := -1, 0
	for i, intent := range botIntents {
		if hits := keywordHits(intent.keywords, words); hits > bestHits {
			best, bestHits = i, hits
		}
	}
	if best < 0 {
		reply := fallbackReply
		reply.Suggestions = append([]string(nil), fallbackReply.Suggestions...)
		return reply
	}
	intent := botIntents[best]
	return model.BotReply{
		Intent:      intent.name,
		Message:     intent.message,
		Suggestions: append([]string(nil), intent.suggestions...),
	}
}

func keywordHits(keywords, words []string) int {
	hits := 0
	for _, kw := range keywords {
		for _, w := range words {
			if strings.HasPrefix(w, kw) {
				hits++
				break
			}
		}
	}
	return hits
}
