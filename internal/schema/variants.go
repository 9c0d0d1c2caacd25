package schema

import "sort"

const likertScale = "(1 = Discordo totalmente | 5 = Concordo totalmente)"

var defaultPlaceholders = Placeholders{
	NotProvided: "Não informado",
	NotRated:    "Não avaliado",
}

var builtins = map[string]func() *Schema{
	"onboarding": Onboarding,
	"feedback":   Feedback,
}

// Builtin returns a fresh copy of a built-in schema.
func Builtin(name string) (*Schema, bool) {
	build, ok := builtins[name]
	if !ok {
		return nil, false
	}
	return build(), true
}

// Names lists the built-in schemas in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Onboarding is the profile form shown to new students.
func Onboarding() *Schema {
	return &Schema{
		Name:  "onboarding",
		Title: "🎉 # Novo cadastro na Brio",
		Welcome: Screen{
			Title: "🎉 Bem-vindo(a) à sua jornada na Brio!",
			Body:  "Vamos conhecer mais sobre você para deixar tudo com a sua cara. Vai ser rápido, divertido e cheio de surpresas!",
			Start: "🚀 Começar agora",
		},
		Farewell: Screen{
			Title: "🎯 Muito obrigado(a)!",
			Body:  "Sua jornada com a Brio vai começar! Em breve, muitas aventuras, desafios e surpresas chegam para você! 🌟",
			Start: "🔄 Voltar para o início",
		},
		GreetingField: "nickname",
		Placeholders:  defaultPlaceholders,
		Questions: []Question{
			{
				ID:          "fullName",
				Kind:        ShortText,
				Title:       "Qual é o seu nome completo?",
				Emoji:       "✍️",
				Label:       "Nome completo",
				Description: "Queremos conhecer você melhor!",
				Placeholder: "Digite sua resposta...",
			},
			{
				ID:          "nickname",
				Kind:        ShortText,
				Title:       "Como você quer que a gente te chame na Brio?",
				Emoji:       "💛",
				Label:       "Apelido",
				Description: "Escolha um apelido legal para sua jornada!",
				Placeholder: "Digite sua resposta...",
			},
			{
				ID:          "favoriteCharacter",
				Kind:        SingleChoice,
				Title:       "Qual desses personagens você mais gosta?",
				Emoji:       "🎭",
				Label:       "Personagem favorito",
				Description: "Escolha o seu favorito ou escreva o seu se não estiver aqui.",
				Options: []Option{
					{Value: "hero", Label: "🦸 Herói ou Heroína", Description: "tipo super-heróis de HQ ou filmes"},
					{Value: "wizard", Label: "🧙 Mago ou Bruxa", Description: "mundo da magia e feitiços"},
					{Value: "dragon", Label: "🐉 Dragão Aventureiro", Description: "criatura mítica e poderosa"},
					{Value: "robot", Label: "🤖 Robô Futurista", Description: "tecnologia e invenções"},
					{Value: "magical", Label: "🦄 Criatura Mágica", Description: "unicórnios, fadas, etc."},
					{Value: "pirate", Label: "🏴‍☠️ Pirata Destemido", Description: "aventuras pelos mares"},
					{Value: OtherValue, Label: "✏️ Outro", Description: "digite seu personagem favorito", AllowsCustomText: true},
				},
			},
			{
				ID:            "superpowers",
				Kind:          MultiChoice,
				Title:         "Se você pudesse ter qualquer superpoder, qual seria?",
				Emoji:         "🪄✨",
				Label:         "Superpoderes",
				Description:   "Selecione até 2 opções.",
				MaxSelections: 2,
				Options: []Option{
					{Value: "fly", Label: "🪂 Voar"},
					{Value: "invisible", Label: "👻 Ficar invisível"},
					{Value: "strength", Label: "💪 Superforça"},
					{Value: "time", Label: "⏳ Controlar o tempo"},
					{Value: "mind", Label: "🧠 Ler mentes"},
					{Value: "create", Label: "🎨 Criar coisas com a imaginação"},
					{Value: OtherValue, Label: "✏️ Outro", AllowsCustomText: true},
				},
			},
			{
				ID:            "favoriteWorlds",
				Kind:          MultiChoice,
				Title:         "Que tipo de mundos você acha mais legais?",
				Emoji:         "🌍",
				Label:         "Mundos favoritos",
				Description:   "Selecione até 3 opções.",
				MaxSelections: 3,
				Options: []Option{
					{Value: "futuristic", Label: "🤖 Futurista/tecnológico"},
					{Value: "medieval", Label: "🏰 Medieval com castelos e cavaleiros"},
					{Value: "space", Label: "🚀 Espaço sideral"},
					{Value: "forest", Label: "🌲 Floresta mágica"},
					{Value: "modern", Label: "🏙️ Cidade moderna"},
					{Value: "apocalyptic", Label: "🧟 Mundo pós-apocalíptico"},
					{Value: OtherValue, Label: "✏️ Outro", AllowsCustomText: true},
				},
			},
			{
				ID:          "musicStyle",
				Kind:        SingleChoice,
				Title:       "Qual estilo de música você mais gosta?",
				Emoji:       "🎶💃",
				Label:       "Estilo musical",
				Description: "Pode escolher o seu favorito ou escrever outro.",
				Options: []Option{
					{Value: "pop", Label: "🎵 Pop", Description: "músicas que tocam no rádio e nas playlists"},
					{Value: "classical", Label: "🎻 Música Clássica", Description: "orquestra, piano, grandes compositores"},
					{Value: "rock", Label: "🎸 Rock", Description: "guitarras e baterias animadas"},
					{Value: "sertanejo", Label: "🎤 Sertanejo", Description: "músicas do interior e sertão"},
					{Value: "kpop", Label: "🎧 K-Pop", Description: "pop coreano, com danças e grupos famosos"},
					{Value: "mpb", Label: "🎼 MPB", Description: "Música Popular Brasileira"},
					{Value: "funk", Label: "🔊 Funk", Description: "batidas do funk brasileiro"},
					{Value: OtherValue, Label: "✏️ Outro", AllowsCustomText: true},
				},
			},
			{
				ID:          "favoriteColor",
				Kind:        SingleChoice,
				Title:       "Qual é a sua cor favorita?",
				Emoji:       "🎨",
				Label:       "Cor favorita",
				Description: "Selecione 1 opção.",
				Options: []Option{
					{Value: "red", Label: "🔴 Vermelho"},
					{Value: "orange", Label: "🟠 Laranja"},
					{Value: "yellow", Label: "🟡 Amarelo"},
					{Value: "green", Label: "🟢 Verde"},
					{Value: "blue", Label: "🔵 Azul"},
					{Value: "purple", Label: "🟣 Roxo"},
					{Value: "black", Label: "⚫ Preto"},
					{Value: "white", Label: "⚪ Branco"},
				},
			},
			{
				ID:            "hobbies",
				Kind:          MultiChoice,
				Title:         "O que você mais gosta de fazer no tempo livre?",
				Emoji:         "🎯",
				Label:         "Hobbies",
				Description:   "Selecione até 3 opções.",
				MaxSelections: 3,
				Options: []Option{
					{Value: "sports", Label: "🏃 Esportes"},
					{Value: "games", Label: "🎮 Games"},
					{Value: "reading", Label: "📚 Leitura"},
					{Value: "drawing", Label: "🎨 Desenhar/Pintar"},
					{Value: "music", Label: "🎤 Tocar instrumentos/Cantar"},
					{Value: "movies", Label: "🎬 Assistir filmes/séries"},
					{Value: OtherValue, Label: "✏️ Outro", AllowsCustomText: true},
				},
			},
			{
				ID:            "collectibles",
				Kind:          MultiChoice,
				Title:         "Se você pudesse colecionar qualquer coisa no mundo, o que seria?",
				Emoji:         "🏆",
				Label:         "Coleção dos sonhos",
				Description:   "Selecione até 2 opções ou escreva outro.",
				MaxSelections: 2,
				Options: []Option{
					{Value: "cards", Label: "🃏 Cartas ou figurinhas raras"},
					{Value: "coins", Label: "🪙 Moedas antigas"},
					{Value: "virtual", Label: "🎮 Skins e itens virtuais"},
					{Value: "toys", Label: "🧸 Miniaturas ou bonecos"},
					{Value: "music_items", Label: "🎧 Produtos de música (CDs, vinis)"},
					{Value: "books", Label: "📚 Livros especiais"},
					{Value: OtherValue, Label: "✏️ Outro", AllowsCustomText: true},
				},
			},
			{
				ID:          "prize",
				Kind:        SingleChoice,
				Title:       "Se você pudesse ganhar um brinde agora por ter completado um desafio da Brio, o que escolheria?",
				Emoji:       "🎁",
				Label:       "Brinde",
				Description: "Escolha seu prêmio dos sonhos!",
				Options: []Option{
					{Value: "gift_card", Label: "🕹️ Gift card de jogo"},
					{Value: "briocoin", Label: "💰 BrioCoin para subir no ranking da Brio"},
					{Value: "skins", Label: "🎨 Skins exclusivas para personalizar seu perfil"},
					{Value: "bottle", Label: "💧 Garrafa/Squeeze personalizada"},
					{Value: "headphones", Label: "🎧 Fones de ouvido"},
					{Value: "tshirt", Label: "👕 Camiseta temática"},
					{Value: "stationery", Label: "📓 Estojo ou kit de papelaria estilizado"},
				},
			},
			{
				ID:          "ambassador",
				Kind:        SingleChoice,
				Title:       "🚀 Quer ser um Embaixador(a) da Brio na sua escola?",
				Emoji:       "🏆",
				Label:       "Embaixador(a)",
				Description: "Como embaixador(a) da Brio Educação, você vai ter benefícios exclusivos, prêmios dentro da plataforma e a missão de engajar seus amigos e sua turma para participar cada vez mais dos desafios.",
				Options: []Option{
					{Value: "yes", Label: "✅ Sim, quero ser um Embaixador(a)!"},
					{Value: "no", Label: "❌ Não, obrigado(a)"},
				},
			},
		},
	}
}

// Feedback is the post-pilot satisfaction survey.
func Feedback() *Schema {
	return &Schema{
		Name:  "feedback",
		Title: "📋 # Feedback do Piloto Brio - Maple Bear",
		Welcome: Screen{
			Title: "Sua opinião vai ajudar a construir a Brio do seu jeito 👇",
			Body:  "Agora que vocês já usaram a plataforma por algumas semanas, chegou a hora de ouvir o que acharam! Essa pesquisa leva só 3 a 5 min. Pode falar com sinceridade: elogios, ideias ou o que pode melhorar.",
			Start: "🚀 Começar agora",
		},
		Farewell: Screen{
			Title: "🎯 Muito obrigado(a)! Seu feedback é valioso!",
			Body:  "Sua opinião vai ajudar a construir a Brio ainda melhor! 🌟",
			Start: "🔄 Dar outro feedback",
		},
		Placeholders: defaultPlaceholders,
		Questions: []Question{
			{
				ID:          "whatLiked",
				Kind:        ShortText,
				Title:       "O que você mais gostou da sua experiência com a Brio até agora?",
				Emoji:       "💙",
				Label:       "O que mais gostou",
				Description: "Pode falar sobre qualquer coisa que te chamou atenção!",
				Placeholder: "Uma coisa que achei muito legal foi...",
				Suggestions: []string{
					"Uma coisa que achei muito legal foi...",
					"O que mais me chamou atenção foi...",
					"Gostei bastante de...",
				},
			},
			{
				ID:          "moreOrganized",
				Kind:        ShortText,
				Title:       "Você sente que ficou mais organizado ou motivado para estudar? Por quê?",
				Emoji:       "📚",
				Label:       "Mais organizado/motivado",
				Description: "Conta pra gente como a Brio te ajudou (ou não) nos estudos!",
				Placeholder: "Sim, porque agora eu...",
				Suggestions: []string{
					"Sim, porque agora eu...",
					"Antes eu tinha dificuldade com..., mas com a Brio...",
					"Acho que sim, porque...",
				},
			},
			{
				ID:          "tellFriend",
				Kind:        ShortText,
				Title:       "Se você fosse contar para um amigo sobre a Brio, o que diria?",
				Emoji:       "👥",
				Label:       "O que diria para um amigo",
				Description: "Imagina que um amigo te pergunta: 'O que é essa Brio?'",
				Placeholder: "Eu diria que a Brio é tipo...",
				Suggestions: []string{
					"Eu diria que a Brio é tipo...",
					"É uma plataforma que te ajuda a...",
					"Eu contaria que...",
				},
			},
			{
				ID:          "feltAccompanied",
				Kind:        LikertScale,
				Title:       "Com a Brio, eu me senti mais acompanhado nos estudos.",
				Emoji:       "🤝",
				Label:       "Me senti acompanhado",
				Description: likertScale,
			},
			{
				ID:          "schedulesHelped",
				Kind:        LikertScale,
				Title:       "Os cronogramas da Brio me ajudaram a me organizar melhor.",
				Emoji:       "📅",
				Label:       "Cronogramas ajudaram",
				Description: likertScale,
			},
			{
				ID:          "gamificationFun",
				Kind:        LikertScale,
				Title:       "A gamificação deixou o estudo mais divertido.",
				Emoji:       "🎮",
				Label:       "Gamificação divertida",
				Description: likertScale,
			},
			{
				ID:          "monitoringUseful",
				Kind:        LikertScale,
				Title:       "A monitoria me ajudou a tirar dúvidas ou me manter no caminho certo.",
				Emoji:       "🎯",
				Label:       "Monitoria útil",
				Description: likertScale,
			},
			{
				ID:          "npsScore",
				Kind:        NpsScore,
				Title:       "De 0 a 10, o quanto você recomendaria a Brio para um amigo?",
				Emoji:       "⭐",
				Label:       "NPS",
				Description: "0 = Não recomendaria | 10 = Recomendaria muito!",
			},
			{
				ID:          "npsReason",
				Kind:        NpsReason,
				Title:       "O que te fez dar essa nota?",
				Emoji:       "💭",
				Label:       "Motivo da nota",
				Description: "Explica pra gente o que te levou a dar essa nota!",
				Placeholder: "Explica pra gente o que te levou a dar essa nota...",
			},
			{
				ID:          "futureOtherSubjects",
				Kind:        ShortText,
				Title:       "Se a Brio continuasse com você no ano que vem, em mais matérias, como você acha que isso te ajudaria?",
				Emoji:       "🚀",
				Label:       "Brio em outras matérias",
				Description: "Imagina a Brio em todas as suas matérias!",
				Placeholder: "Acho que me ajudaria a...",
				Suggestions: []string{
					"Acho que me ajudaria a...",
					"Seria bom porque nas outras matérias eu também tenho dificuldade em...",
					"Me sentiria mais preparado para...",
				},
			},
			{
				ID:          "whatToImprove",
				Kind:        ShortText,
				Title:       "O que você acha que poderia ser melhor na Brio? Pode falar com sinceridade!",
				Emoji:       "🔧",
				Label:       "O que melhorar",
				Description: "Sua opinião sincera nos ajuda muito!",
				Placeholder: "Uma coisa que acho que poderia melhorar é...",
				Suggestions: []string{
					"Uma coisa que acho que poderia melhorar é...",
					"Senti falta de...",
					"Talvez ficasse melhor se...",
				},
			},
			{
				ID:          "useMoreIf",
				Kind:        ShortText,
				Title:       "O que faria com que você quisesse usar mais a plataforma da Brio no seu dia a dia nos estudos?",
				Emoji:       "💡",
				Label:       "Usaria mais se",
				Description: "O que te faria usar a Brio ainda mais?",
				Placeholder: "Eu usaria mais se tivesse…",
				Suggestions: []string{
					"Eu usaria mais se tivesse…",
					"Acho que seria mais útil no meu dia a dia se…",
					"Seria mais fácil de usar no meu ritmo se…",
				},
			},
			{
				ID:          "freeMessage",
				Kind:        ShortText,
				Title:       "Quer deixar mais alguma mensagem, ideia ou sugestão pra gente?",
				Emoji:       "🎨",
				Label:       "Mensagem final",
				Description: "Esse espaço é seu. Manda ver! 🚀",
				Placeholder: "Uma coisa que eu queria dizer é…",
				Suggestions: []string{
					"Uma coisa que eu queria dizer é…",
					"Já usei outra plataforma parecida, mas a Brio…",
					"Tive uma ideia que poderia ser legal…",
					"Senti que com a Brio eu…",
					"Só queria dizer que…",
				},
			},
		},
	}
}
