package shopify

// OrdersQuery fetches one page of orders for the orders view
var OrdersQuery = MustParseDocument(`
query listOrders($first: Int, $after: String, $last: Int, $before: String) {
  orders(first: $first, after: $after, last: $last, before: $before, reverse: true) {
    nodes {
      id
      name
      createdAt
      phone
      tags
      currentSubtotalLineItemsQuantity
      customer {
        id
        email
        displayName
      }
      originalTotalPriceSet {
        presentmentMoney {
          amount
          currencyCode
        }
      }
      displayFulfillmentStatus
      displayFinancialStatus
    }
    pageInfo {
      hasNextPage
      hasPreviousPage
      startCursor
      endCursor
    }
  }
}
`, true)

// CustomersQuery fetches one page of customers
var CustomersQuery = MustParseDocument(`
query listCustomers($first: Int, $after: String, $last: Int, $before: String) {
  customers(first: $first, after: $after, last: $last, before: $before) {
    edges {
      node {
        id
        displayName
        email
        phone
      }
    }
    pageInfo {
      hasNextPage
      hasPreviousPage
      startCursor
      endCursor
    }
  }
}
`, true)

// InventoryQuery fetches products with variant pricing and stock locations
var InventoryQuery = MustParseDocument(`
query listInventory($first: Int, $after: String, $last: Int, $before: String) {
  products(first: $first, after: $after, last: $last, before: $before) {
    edges {
      node {
        id
        title
        vendor
        status
        variants(first: 5) {
          nodes {
            displayName
            inventoryQuantity
            contextualPricing(context: {}) {
              price {
                amount
                currencyCode
              }
              compareAtPrice {
                amount
                currencyCode
              }
            }
            inventoryItem {
              id
              inventoryLevels(first: 10) {
                edges {
                  node {
                    id
                    location {
                      name
                      activatable
                    }
                  }
                }
              }
            }
          }
        }
      }
    }
    pageInfo {
      hasNextPage
      hasPreviousPage
      startCursor
      endCursor
    }
  }
}
`, true)

// CollectionsQuery fetches collections with their images
var CollectionsQuery = MustParseDocument(`
query listCollections($first: Int, $after: String, $last: Int, $before: String) {
  collections(first: $first, after: $after, last: $last, before: $before) {
    edges {
      node {
        id
        title
        handle
        updatedAt
        sortOrder
        image {
          url
          altText
        }
      }
    }
    pageInfo {
      hasNextPage
      hasPreviousPage
      startCursor
      endCursor
    }
  }
}
`, true)

// CollectionReportQuery fetches the collection summary used by the reports view
var CollectionReportQuery = MustParseDocument(`
query collectionReport($first: Int, $after: String, $last: Int, $before: String) {
  collections(first: $first, after: $after, last: $last, before: $before, sortKey: UPDATED_AT, reverse: true) {
    edges {
      node {
        id
        title
        handle
        updatedAt
        sortOrder
      }
    }
    pageInfo {
      hasNextPage
      hasPreviousPage
      startCursor
      endCursor
    }
  }
}
`, true)

// DiscountAutomaticBasicCreateMutation creates an automatic amount-off discount
var DiscountAutomaticBasicCreateMutation = MustParseDocument(`
mutation discountAutomaticBasicCreate($automaticBasicDiscount: DiscountAutomaticBasicInput!) {
  discountAutomaticBasicCreate(automaticBasicDiscount: $automaticBasicDiscount) {
    automaticDiscountNode {
      id
      automaticDiscount {
        ... on DiscountAutomaticBasic {
          title
          startsAt
          endsAt
          minimumRequirement {
            ... on DiscountMinimumSubtotal {
              greaterThanOrEqualToSubtotal {
                amount
                currencyCode
              }
            }
          }
          customerGets {
            value {
              ... on DiscountAmount {
                amount {
                  amount
                  currencyCode
                }
                appliesOnEachItem
              }
            }
          }
        }
      }
    }
    userErrors {
      field
      code
      message
    }
  }
}
`, false)
