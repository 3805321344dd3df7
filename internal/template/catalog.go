package template

// Entry is one recognized e-mail type. Title is the subject line and the
// label shown when choosing a template.
type Entry struct {
	Key   string
	Title string
}

// Catalog lists the recognized e-mail types in display order.
var Catalog = []Entry{
	{Key: "convite_processo_seletivo", Title: "E-mail de convite para processo seletivo"},
	{Key: "envio_case", Title: "E-mail de confecção de case"},
	{Key: "agendamento_entrevista_gg", Title: "Retorno de case e agendamento (GG)"},
	{Key: "agendamento_entrevista_gg_lider", Title: "Retorno de case e agendamento (GG e Líder)"},
	{Key: "agendamento_entrevista_lider", Title: "Retorno de case e agendamento (Líder)"},
	{Key: "feedback_negativo_case", Title: "Feedback negativo pós case"},
	{Key: "feedback_negativo_entrevista", Title: "Feedback negativo pós entrevista"},
	{Key: "proposta_trabalho", Title: "Feedback positivo: Proposta de trabalho"},
}

// Title returns the display title for key.
func Title(key string) (string, bool) {
	for _, e := range Catalog {
		if e.Key == key {
			return e.Title, true
		}
	}
	return "", false
}

// Known reports whether key is a catalog key.
func Known(key string) bool {
	_, ok := Title(key)
	return ok
}

// Defaults returns a fresh copy of the bodies written on first run.
func Defaults() Set {
	return Set{
		"convite_processo_seletivo": "Olá [NOME_CANDIDATO],\n\n" +
			"Obrigado pelo seu interesse no Quintessa! Gostaríamos de convidar você a participar do nosso processo seletivo.\n\n" +
			"Em breve enviaremos os detalhes das próximas etapas.\n\n" +
			"Atenciosamente,\nEquipe de Gente & Gestão",
		"envio_case": "Olá [NOME_CANDIDATO],\n\n" +
			"Como próxima etapa do nosso processo seletivo, segue o case para desenvolvimento.\n\n" +
			"Fique à vontade para tirar dúvidas respondendo este e-mail.\n\n" +
			"Atenciosamente,\nEquipe de Gente & Gestão",
		"agendamento_entrevista_gg": "Olá [NOME_CANDIDATO],\n\n" +
			"Parabéns pela resolução do case! Gostaríamos de agendar uma entrevista com a equipe de Gente & Gestão.\n\n" +
			"Por favor, responda com sua disponibilidade para os próximos dias.\n\n" +
			"Atenciosamente,\nEquipe de Gente & Gestão",
		"agendamento_entrevista_gg_lider": "Olá [NOME_CANDIDATO],\n\n" +
			"Parabéns! Gostaríamos de agendar a próxima entrevista com GG e o Líder Técnico.\n\n" +
			"Por favor, responda com sua disponibilidade para os próximos dias.\n\n" +
			"Atenciosamente,\nEquipe de Gente & Gestão",
		"agendamento_entrevista_lider": "Olá [NOME_CANDIDATO],\n\n" +
			"Parabéns! Gostaríamos de agendar a próxima entrevista com o Líder Técnico.\n\n" +
			"Por favor, responda com sua disponibilidade para os próximos dias.\n\n" +
			"Atenciosamente,\nEquipe de Gente & Gestão",
		"feedback_negativo_case": "Olá [NOME_CANDIDATO],\n\n" +
			"Agradecemos sua participação. Neste momento, não seguiremos com sua candidatura.\n\n" +
			"Desejamos sucesso na sua jornada.\n\n" +
			"Atenciosamente,\nEquipe de Gente & Gestão",
		"feedback_negativo_entrevista": "Olá [NOME_CANDIDATO],\n\n" +
			"Agradecemos sua participação na entrevista. No momento, optamos por seguir com outros candidatos.\n\n" +
			"Desejamos sucesso na sua jornada.\n\n" +
			"Atenciosamente,\nEquipe de Gente & Gestão",
		"proposta_trabalho": "Olá [NOME_CANDIDATO],\n\n" +
			"Temos ótimas notícias! Estamos muito felizes em te oferecer a posição. Bem-vindo(a) ao Quintessa!\n\n" +
			"Em breve entraremos em contato com os detalhes da proposta.\n\n" +
			"Atenciosamente,\nEquipe de Gente & Gestão",
	}
}
