package domain

import (
	"time"

	"github.com/eaugusto/vendas/sqlp"
)

// Client is a customer, identified by its code.
type Client struct {
	ID            int64     `json:"id,omitempty"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	CPF           string    `json:"cpf"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	AddressNumber string    `json:"addressNumber"`
	City          string    `json:"city"`
	State         string    `json:"state"`
	BirthDate     time.Time `json:"birthDate"`
}

func (c Client) EntityCode() string { return c.Code }
func (c Client) EntityName() string { return c.Name }

// ClientMetadata maps Client onto tb_client.
var ClientMetadata = sqlp.NewMetadata("tb_client",
	sqlp.Identifier("ID", "id", func(c *Client) int64 { return c.ID }, func(c *Client, v int64) { c.ID = v }),
	sqlp.Text("Code", "code", func(c *Client) string { return c.Code }, func(c *Client, v string) { c.Code = v }).NotNull(),
	sqlp.Text("Name", "name", func(c *Client) string { return c.Name }, func(c *Client, v string) { c.Name = v }).NotNull(),
	sqlp.Text("CPF", "cpf", func(c *Client) string { return c.CPF }, func(c *Client, v string) { c.CPF = v }).NotNull(),
	sqlp.Text("Phone", "", func(c *Client) string { return c.Phone }, func(c *Client, v string) { c.Phone = v }),
	sqlp.Text("Address", "", func(c *Client) string { return c.Address }, func(c *Client, v string) { c.Address = v }),
	sqlp.Text("AddressNumber", "", func(c *Client) string { return c.AddressNumber }, func(c *Client, v string) { c.AddressNumber = v }),
	sqlp.Text("City", "", func(c *Client) string { return c.City }, func(c *Client, v string) { c.City = v }),
	sqlp.Text("State", "", func(c *Client) string { return c.State }, func(c *Client, v string) { c.State = v }),
	sqlp.Date("BirthDate", "", func(c *Client) time.Time { return c.BirthDate }, func(c *Client, v time.Time) { c.BirthDate = v }),
)
