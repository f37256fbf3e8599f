package extract

import (
	"fmt"

	"invoicegen/internal/domain"
)

// BuildExtractionPrompt returns the vision-model prompt for pulling invoice
// and purchase-order fields out of an uploaded document. The supplier's own
// identity is injected so the model never mistakes the supplier for the
// customer on a PO addressed to them.
func BuildExtractionPrompt(company *domain.CompanyProfile) string {
	return fmt.Sprintf(`You are an expert at extracting structured data from Indian business documents (invoices, purchase orders, quotations).

IMPORTANT CONTEXT:
- This document is being processed by %s (GSTIN: %s, %s)
- If this is a Purchase Order, %s is the VENDOR/SUPPLIER receiving the order
- The CUSTOMER/BUYER details should be extracted as billing/shipping info
- DO NOT extract the supplier's own details as billing/shipping

EXTRACTION RULES:
1. Extract the CUSTOMER/BUYER information (the party PLACING the order or RECEIVING the invoice)
2. For Purchase Orders: "Bill To" section at the TOP = customer's billing address (this is the company that issued the PO)
3. For Purchase Orders: "Ship To" section = delivery destination
4. Extract PO number, date, and all product line items
5. For state codes like "UP-09" or "09", provide BOTH the full state name AND the code
6. Prices should be the BASE RATE before tax (not the tax-inclusive amount)
7. Do NOT include packing/cartage unless explicitly listed as a separate line item
8. For dates, use DD/MM/YYYY format

OUTPUT FORMAT (JSON only, no markdown):
{
  "document_type": "purchase_order" | "invoice" | "quotation",
  "po": "PO number if present",
  "invoice_date": "DD/MM/YYYY format",
  "billing": {
    "name": "Company/Person name",
    "address": "Full address on one line",
    "gstin": "15-character GSTIN if present",
    "state": "Full state name (e.g., Uttar Pradesh, not UP)",
    "state_code": "2-digit code (e.g., 09)"
  },
  "shipping": {
    "name": "Company/Person name",
    "address": "Full address on one line",
    "gstin": "GSTIN if present (often same as billing)",
    "state": "Full state name",
    "state_code": "2-digit code"
  },
  "products": [
    {
      "name": "Product description",
      "hsn_code": "HSN/SAC code",
      "quantity": 1,
      "rate": 1000.00
    }
  ],
  "packing_charges": 0,
  "extraction_confidence": "high" | "medium" | "low",
  "notes": "Any issues or uncertainties"
}

If billing and shipping are the same, still populate both with the same values.
If a field cannot be determined, use an empty string for text and 0 for numbers.
Respond with ONLY the JSON object, no explanations.`,
		company.Name, company.GSTIN, company.State, company.Name)
}
