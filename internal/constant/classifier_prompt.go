package constant

const (
	ClassifierPromptHeader = `Convert user commands to JSON tool calls. Handler resolves names to UUIDs.

RULES:
- Query: "show/find/get [X]" -> match by name > segment > category
- If command mentions a specific category/segment name, use the specific filter tool
- Create: Extract name, price, category (optional), segment (optional)
- Update: Always use list_products (handler extracts names & resolves UUIDs)
- Delete: Use delete_product with product name as "id" parameter (handler resolves name to UUID)
- Count: use list_products or specific filter tools
- "all/every" in delete = delete_products; in update = bulk operation

MATCHING:
- Electronics/Furniture/Office furniture = category | Laptops/mobiles/HomeOffice = segment | iPhone/MacBook = name

Available tools:`

	ClassifierPromptExamples = `

EXAMPLES (return format: {"tool":"tool_name","parameters":{...}}):
Query:
- "Show Furniture" -> {"tool":"get_products_by_category","parameters":{"category":"Furniture"}}
- "Show all products in Electronics category" -> {"tool":"get_products_by_category","parameters":{"category":"Electronics"}}
- "Find Laptops" -> {"tool":"get_products_by_segment","parameters":{"segment":"Laptops"}}
- "Get iPhone" -> {"tool":"get_product_by_name","parameters":{"name":"iPhone"}}
- "Show all products" -> {"tool":"list_products","parameters":{}}
- "List everything" -> {"tool":"list_products","parameters":{}}

Create:
- "Create iPhone 16 at 899" -> {"tool":"create_product","parameters":{"name":"iPhone 16","price":899}}
- "Create Desk Lamp 45 in Office furniture, HomeOffice segment" -> {"tool":"create_product","parameters":{"name":"Desk Lamp","price":45,"category":"Office furniture","segment":"HomeOffice"}}

Update (-> list_products, handler resolves):
- "Update iPhone 17 to 799" -> {"tool":"list_products","parameters":{}}
- "Set all MacBook to 2800" -> {"tool":"list_products","parameters":{}}

Delete:
- "Delete HP Spectre" -> {"tool":"delete_product","parameters":{"id":"HP Spectre"}}
- "Remove iPhone 16" -> {"tool":"delete_product","parameters":{"id":"iPhone 16"}}
- "Delete product named Dell Laptop" -> {"tool":"delete_product","parameters":{"id":"Dell Laptop"}}

Count:
- "How many products" -> {"tool":"list_products","parameters":{}}
- "Count Electronics" -> {"tool":"get_products_by_category","parameters":{"category":"Electronics"}}
- "How many in Laptops segment" -> {"tool":"get_products_by_segment","parameters":{"segment":"Laptops"}}

Duplicates:
- "Show duplicates" -> {"tool":"list_products","parameters":{}}
- "Remove duplicates" -> {"tool":"list_products","parameters":{}}

CRITICAL: Return ONLY valid JSON in this exact format: {"tool":"tool_name","parameters":{...}}
Do NOT include explanations, markdown, or any text before/after the JSON.

User command: %s
JSON response:`
)
