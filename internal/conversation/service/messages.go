package service

import (
	"fmt"
	"strings"
)

type areaCopy struct {
	expertise string
	urgency   string
	benefit   string
}

var areaCopies = map[string]areaCopy{
	"penal": {
		expertise: "Nossa equipe especializada em Direito Penal já resolveu centenas de casos similares",
		urgency:   "Sabemos que situações criminais precisam de atenção IMEDIATA",
		benefit:   "proteger seus direitos e buscar o melhor resultado possível",
	},
	"saude": {
		expertise: "Nossos advogados especialistas em Direito da Saúde têm expertise em ações contra planos",
		urgency:   "Questões de saúde não podem esperar",
		benefit:   "garantir seu tratamento e obter as coberturas devidas",
	},
	"default": {
		expertise: "Nossa equipe jurídica experiente",
		urgency:   "Sua situação precisa de atenção especializada",
		benefit:   "alcançar a solução mais eficaz para seu caso",
	},
}

func areaKey(area string) string {
	lower := strings.ToLower(area)
	for _, word := range []string{"penal", "criminal", "crime"} {
		if strings.Contains(lower, word) {
			return "penal"
		}
	}
	for _, word := range []string{"saude", "saúde", "plano", "medic"} {
		if strings.Contains(lower, word) {
			return "saude"
		}
	}
	return "default"
}

// strategicMessage is the priority confirmation sent to the lead's WhatsApp
// after finalization, personalized by practice area.
func strategicMessage(firstName, area string) string {
	ac := areaCopies[areaKey(area)]

	return fmt.Sprintf(`🚀 %s, uma EXCELENTE notícia!

✅ Seu atendimento foi PRIORIZADO no sistema m.lima

%s com resultados comprovados e já foi IMEDIATAMENTE notificada sobre seu caso.

🎯 %s - por isso um advogado experiente entrará em contato com você nos PRÓXIMOS MINUTOS.

🏆 DIFERENCIAL m.lima:
• ⚡ Atendimento ágil e personalizado
• 🎯 Estratégia focada em RESULTADOS
• 📋 Acompanhamento completo do processo
• 💪 Equipe com vasta experiência

Você fez a escolha certa ao confiar no m.lima para %s.

⏰ Aguarde nossa ligação - sua situação está em excelentes mãos!

---
✉️ m.lima Advogados Associados
📱 Contato prioritário ativado`, firstName, ac.expertise, ac.urgency, ac.benefit)
}

// finalMessage is the last chat reply of a finalized conversation. Its
// wording degrades when the lawyer alert or the WhatsApp confirmation
// could not be delivered.
func finalMessage(firstName string, notified, whatsappSent bool) string {
	notificationStatus := ""
	if notified {
		notificationStatus = " ⚡ Nossa equipe foi imediatamente notificada!"
	}

	delivery := "📝 Suas informações foram salvas com segurança."
	if whatsappSent {
		delivery = "📱 Mensagem de confirmação enviada no seu WhatsApp!"
	}

	return fmt.Sprintf(`Perfeito, %s! ✅

Todas suas informações foram registradas com sucesso%s

Um advogado experiente do m.lima entrará em contato com você em breve para dar prosseguimento ao seu caso com toda atenção necessária.

%s

Você fez a escolha certa ao confiar no escritório m.lima para cuidar do seu caso! 🤝

Em alguns minutos, um especialista entrará em contato.`, firstName, notificationStatus, delivery)
}
