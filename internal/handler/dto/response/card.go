package response

import "grillbox/internal/usecase/commands"

type CardResponse struct {
	ID       string `json:"id"`
	Brand    string `json:"brand"`
	Last4    string `json:"last4"`
	ExpMonth int64  `json:"expMonth"`
	ExpYear  int64  `json:"expYear"`
}

type CardListResponse struct {
	Cards []CardResponse `json:"cards"`
}

// CardSetupResponse carries the secret the client hands to the processor SDK.
type CardSetupResponse struct {
	SetupID      string `json:"setupId"`
	ClientSecret string `json:"clientSecret"`
}

func FromCard(c commands.Card) CardResponse {
	return CardResponse{
		ID:       c.ID,
		Brand:    c.Brand,
		Last4:    c.Last4,
		ExpMonth: c.ExpMonth,
		ExpYear:  c.ExpYear,
	}
}

func FromCards(cards []commands.Card) *CardListResponse {
	resp := &CardListResponse{Cards: make([]CardResponse, 0, len(cards))}
	for _, c := range cards {
		resp.Cards = append(resp.Cards, FromCard(c))
	}
	return resp
}

func FromCardSetup(s *commands.CardSetup) *CardSetupResponse {
	return &CardSetupResponse{SetupID: s.SetupRef, ClientSecret: s.ClientSecret}
}
